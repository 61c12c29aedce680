package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NUMBERING_PREFIX_QUOTE", "OFF-")
	t.Setenv("REDIS_LOCK_TTL_SECONDS", "10")

	cfg := Load()

	assert.Equal(t, "ledger-api", cfg.App.Name)
	assert.Equal(t, 4, cfg.Numbering.Padding)
	assert.Equal(t, "INV-", cfg.Numbering.Prefixes["invoice"])
	assert.Equal(t, "OFF-", cfg.Numbering.Prefixes["quote"])
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "ledger", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=ledger port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestConfigureLogger(t *testing.T) {
	defer ConfigureLogger(&LogConfig{Level: "info", Format: "json"})

	ConfigureLogger(&LogConfig{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, GetLogger().Formatter)

	ConfigureLogger(&LogConfig{Level: "nonsense", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, GetLogger().Formatter)
}
