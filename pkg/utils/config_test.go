package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{ErrorStatusMode: ErrorStatusLegacy},
		Store:     StoreConfig{Driver: StoreDriverMemory},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	c := validConfig()
	c.Store.Driver = StoreDriverPostgres
	c.App.ErrorStatusMode = ErrorStatusConflict
	assert.NoError(t, c.Validate())

	c = validConfig()
	c.Store.Driver = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORE_DRIVER")

	c = validConfig()
	c.App.ErrorStatusMode = "strict"
	assert.ErrorContains(t, c.Validate(), "ERROR_STATUS_MODE")

	c = validConfig()
	c.RateLimit.RPS = 0
	assert.Error(t, c.Validate())

	c.RateLimit.Enabled = false
	assert.NoError(t, c.Validate())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"Title":    "This field is required",
		"Duration": "Minimum value is 1",
	})
	assert.Equal(t, "Duration: Minimum value is 1; Title: This field is required", msg)
}
