package di

import (
	"testing"

	"Tickfunds/internal/usecase"
	"Tickfunds/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAppWithDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	defer cleanup()

	assert.Equal(t, usecase.BackendNone, app.ActivityProc.Backend())
}

func TestActivityPublisherNeedsItsBackend(t *testing.T) {
	cfg := config.Default()

	cfg.Activity.Backend = usecase.BackendKafka
	_, err := ProvideActivityPublisher(cfg, nil, nil)
	assert.Error(t, err)

	cfg.Activity.Backend = usecase.BackendClickHouse
	_, err = ProvideActivityPublisher(cfg, nil, nil)
	assert.Error(t, err)

	cfg.Activity.Backend = usecase.BackendNone
	pub, err := ProvideActivityPublisher(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestCacheDriverNeedsRedis(t *testing.T) {
	cfg := config.Default()
	for _, driver := range []string{"redis", "layered"} {
		cfg.Cache.Driver = driver
		_, _, err := ProvideCache(cfg, nil)
		assert.Error(t, err, driver)
	}

	cfg.Cache.Driver = "memory"
	c, cleanup, err := ProvideCache(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
	cleanup()
}

func TestVerifierFallsBackToInline(t *testing.T) {
	v := ProvideVerifier(nil, nil)
	inline, ok := v.(*usecase.InlineVerifier)
	require.True(t, ok)
	assert.NoError(t, inline.Close())
}
