package app

import (
	"testing"
	"time"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

func TestNewEnvConfigDefaults(t *testing.T) {
	cfg, err := NewEnvConfig("kundali_cfg_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Ephemeris.Backend != BackendAnalytic {
		t.Errorf("backend = %q", cfg.Ephemeris.Backend)
	}
	if cfg.Engine.Zodiac != domain.ZodiacSidereal || cfg.Engine.HouseSystem != domain.HouseWholeSign {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Engine.CacheTTL != 24*time.Hour {
		t.Errorf("cache ttl = %v", cfg.Engine.CacheTTL)
	}
	if cfg.Redis == nil || cfg.Server == nil || cfg.Log == nil {
		t.Fatal("nested sections must be allocated")
	}
	if len(cfg.Kafka.List) != 0 {
		t.Errorf("kafka = %+v", cfg.Kafka.List)
	}
	if !cfg.Positions.Enabled || cfg.Positions.Hour != 5 {
		t.Errorf("positions = %+v", cfg.Positions)
	}
}

func TestNewEnvConfigOverrides(t *testing.T) {
	t.Setenv("KUNDALI_CFG_TEST2_EPHEMERIS_BACKEND", "jpl")
	t.Setenv("KUNDALI_CFG_TEST2_EPHEMERIS_JPL_FILE", "/data/de421.bin")
	t.Setenv("KUNDALI_CFG_TEST2_ENGINE_HOUSE_SYSTEM", "equal")
	t.Setenv("KUNDALI_CFG_TEST2_KAFKA_COUNT", "1")
	t.Setenv("KUNDALI_CFG_TEST2_KAFKA_0_NAME", "chart_requests")
	t.Setenv("KUNDALI_CFG_TEST2_KAFKA_0_CONFIG_TOPIC", "kundali.requests")
	t.Setenv("KUNDALI_CFG_TEST2_KAFKA_0_CONFIG_CONSUMER_GROUP", "kundali")

	cfg, err := NewEnvConfig("kundali_cfg_test2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Ephemeris.Backend != BackendJPL || cfg.Ephemeris.JPL.Path != "/data/de421.bin" {
		t.Errorf("ephemeris = %+v", cfg.Ephemeris)
	}
	if cfg.Engine.HouseSystem != domain.HouseEqual {
		t.Errorf("house system = %q", cfg.Engine.HouseSystem)
	}
	if len(cfg.Kafka.List) != 1 || !cfg.Kafka.List[0].Config.IsConsumer() {
		t.Errorf("kafka = %+v", cfg.Kafka.List)
	}
}

func TestNewEnvConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("KUNDALI_CFG_TEST3_EPHEMERIS_BACKEND", "swisseph")

	if _, err := NewEnvConfig("kundali_cfg_test3"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
