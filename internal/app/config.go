package app

import (
	"fmt"

	server "github.com/admin/astro/kundali-engine/internal/adapters/primary/http"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/ephemeris/jpl"
	kafkaAdapter "github.com/admin/astro/kundali-engine/internal/adapters/secondary/kafka"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/storage/inmemory"
	redisAdapter "github.com/admin/astro/kundali-engine/internal/adapters/secondary/storage/redis"
	"github.com/admin/astro/kundali-engine/internal/pkg/logger"
	jobScheduler "github.com/admin/astro/kundali-engine/internal/services/jobs"
	"github.com/admin/astro/kundali-engine/internal/usecases/kundali"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendAnalytic = "analytic"
	BackendJPL      = "jpl"
)

type Config struct {
	Log         *logger.Config            `envconfig:"LOG"`
	Server      *server.Config            `envconfig:"APISERVER"`
	Redis       *redisAdapter.Config      `envconfig:"REDIS"`
	MemoryCache inmemory.Config           `envconfig:"MEMORY_CACHE"` // когда Redis не задан
	Kafka       kafkaAdapter.KafkaConfigs `envconfig:"KAFKA"`
	Ephemeris   EphemerisConfig           `envconfig:"EPHEMERIS"`
	Engine      kundali.Config            `envconfig:"ENGINE"`
	Positions   jobScheduler.Config       `envconfig:"POSITIONS"`
}

// EphemerisConfig выбор бэкенда эфемерид, один на процесс
type EphemerisConfig struct {
	Backend string     `envconfig:"BACKEND" default:"analytic"` // analytic | jpl
	JPL     jpl.Config `envconfig:"JPL"`
}

func (c EphemerisConfig) Validate() error {
	switch c.Backend {
	case BackendAnalytic, BackendJPL:
		return nil
	default:
		return fmt.Errorf("unknown ephemeris backend %q", c.Backend)
	}
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// Kafka подключения загружаются по индексу: envconfig не знает размер слайса
	if err := cfg.Kafka.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}

	if err := cfg.Ephemeris.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ephemeris config: %w", err)
	}

	return cfg, nil
}
