package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	server "github.com/admin/astro/kundali-engine/internal/adapters/primary/http"
	healthcheckController "github.com/admin/astro/kundali-engine/internal/adapters/primary/http/controllers/healthcheck"
	kundaliController "github.com/admin/astro/kundali-engine/internal/adapters/primary/http/controllers/kundali"
	metricsController "github.com/admin/astro/kundali-engine/internal/adapters/primary/http/controllers/metrics"
	kafkaConsumerAdapter "github.com/admin/astro/kundali-engine/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/astro/kundali-engine/internal/adapters/primary/kafka/handlers"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/ephemeris/analytic"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/ephemeris/jpl"
	kafkaAdapter "github.com/admin/astro/kundali-engine/internal/adapters/secondary/kafka"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/storage/inmemory"
	redisAdapter "github.com/admin/astro/kundali-engine/internal/adapters/secondary/storage/redis"
	"github.com/admin/astro/kundali-engine/internal/pkg/metrics"
	"github.com/admin/astro/kundali-engine/internal/ports/cache"
	"github.com/admin/astro/kundali-engine/internal/ports/ephemeris"
	"github.com/admin/astro/kundali-engine/internal/ports/kafka"
	"github.com/admin/astro/kundali-engine/internal/ports/service"
	"github.com/admin/astro/kundali-engine/internal/ports/usecase"
	ephemerisService "github.com/admin/astro/kundali-engine/internal/services/ephemeris"
	jobScheduler "github.com/admin/astro/kundali-engine/internal/services/jobs"
	"github.com/admin/astro/kundali-engine/internal/usecases/kundali"
)

type Dependencies struct {
	HTTPServer     *http.Server
	Ephemeris      ephemeris.IBackend
	Cache          cache.Cache
	KafkaProducers map[string]*kafkaAdapter.Producer
	KafkaConsumers map[string]*kafkaConsumerAdapter.Consumer
	JobScheduler   *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies() (*Dependencies, error) {
	backend, err := a.initEphemeris()
	if err != nil {
		return nil, fmt.Errorf("failed to init ephemeris: %w", err)
	}
	ephemerisSvc := ephemerisService.New(backend)

	chartCache, memCache := a.initCache()
	recorder := metrics.New(prometheus.DefaultRegisterer)

	kundaliService := kundali.New(ephemerisSvc, chartCache, recorder, a.Cfg.Engine, a.Log)

	kafkaProducers, kafkaConsumers := a.initKafka(kundaliService)
	httpServer := a.initHTTP(kundaliService, ephemerisSvc, chartCache, recorder)
	scheduler := a.initJobScheduler(kundaliService, memCache)

	return &Dependencies{
		HTTPServer:     httpServer,
		Ephemeris:      backend,
		Cache:          chartCache,
		KafkaProducers: kafkaProducers,
		KafkaConsumers: kafkaConsumers,
		JobScheduler:   scheduler,
	}, nil
}

// initEphemeris загружает выбранный бэкенд один раз на процесс
func (a *App) initEphemeris() (ephemeris.IBackend, error) {
	switch a.Cfg.Ephemeris.Backend {
	case BackendJPL:
		backend, err := jpl.New(a.Cfg.Ephemeris.JPL)
		if err != nil {
			return nil, err
		}
		start, end := backend.Range()
		a.Log.Info("jpl ephemeris loaded", "path", a.Cfg.Ephemeris.JPL.Path, "start_jd", start, "end_jd", end)
		return backend, nil
	default:
		a.Log.Info("using analytic ephemeris")
		return analytic.New(), nil
	}
}

// initCache Redis, если задан хост и он отвечает, иначе in-memory.
// Второе значение не nil только для in-memory кэша, его чистит janitor.
func (a *App) initCache() (cache.Cache, *inmemory.Cache) {
	if a.Cfg.Redis != nil && a.Cfg.Redis.IsEnabled() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err == nil {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(redisClient, a.Cfg.Redis.Breaker, a.Log), nil
		}
		a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
	}

	mem := inmemory.NewCacheWithLimit(a.Cfg.MemoryCache.MaxEntries)
	return mem, mem
}

// initKafka сначала producers (нужны handler'ам), потом consumers
func (a *App) initKafka(kundaliService usecase.IKundaliUsecase) (
	map[string]*kafkaAdapter.Producer,
	map[string]*kafkaConsumerAdapter.Consumer,
) {
	producers := make(map[string]*kafkaAdapter.Producer)
	consumers := make(map[string]*kafkaConsumerAdapter.Consumer)

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if kafkaCfg.Config.IsConsumer() {
			continue
		}
		prod, err := kafkaAdapter.NewProducer(kafkaCfg.Config, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		producers[kafkaCfg.Name] = prod
	}

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if !kafkaCfg.Config.IsConsumer() {
			continue
		}
		handler := a.createHandlerForTopic(kafkaCfg.Name, kundaliService, producers)
		if handler == nil {
			a.Log.Warn("no handler for kafka topic, skipping consumer", "name", kafkaCfg.Name)
			continue
		}

		consumer, err := kafkaConsumerAdapter.NewConsumer(kafkaCfg.Config, handler, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka consumer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		consumers[kafkaCfg.Name] = consumer
	}

	return producers, consumers
}

// createHandlerForTopic создаёт handler для указанного топика Kafka
func (a *App) createHandlerForTopic(
	topicName string,
	kundaliService usecase.IKundaliUsecase,
	producers map[string]*kafkaAdapter.Producer,
) kafka.MessageHandler {
	switch topicName {
	case kafkaAdapter.ChartRequests:
		var results kafka.IKafkaProducer
		if prod, ok := producers[kafkaAdapter.ChartResults]; ok {
			results = prod
		} else {
			a.Log.Warn("chart results producer is not configured, results will not be published")
		}
		return kafkaHandlers.NewChartRequestHandler(kundaliService, results, a.Log)
	default:
		a.Log.Warn("unknown kafka topic", "topic", topicName)
		return nil
	}
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	kundaliService usecase.IKundaliUsecase,
	ephemerisSvc service.IEphemerisService,
	chartCache cache.Cache,
	recorder *metrics.Recorder,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(ephemerisSvc, chartCache, a.Log),
		kundaliController.New(kundaliService, a.Log),
		metricsController.New(prometheus.DefaultGatherer),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, recorder, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(kundaliService *kundali.Service, memCache *inmemory.Cache) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log)

	if a.Cfg.Positions.Enabled {
		scheduler.Register(jobScheduler.NewPositionsUpdater(kundaliService, a.Cfg.Positions, a.Log))
		a.Log.Info("positions updater job registered", "hour", a.Cfg.Positions.Hour, "timezone", a.Cfg.Positions.Timezone)
	}

	if memCache != nil {
		scheduler.Register(jobScheduler.NewCacheJanitor(memCache, a.Cfg.Positions.CleanupInterval, a.Log))
		a.Log.Info("cache janitor job registered")
	}

	return scheduler
}
