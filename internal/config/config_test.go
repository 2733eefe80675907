package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BSKY_HANDLE", "me.bsky.social")
	t.Setenv("BSKY_APP_PASSWORD", "app-password")
	t.Setenv("BSKY_PDS", "")
	t.Setenv("BSKY_FIREHOSE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "me.bsky.social", cfg.Handle)
	assert.Equal(t, "app-password", cfg.AppPassword)
	assert.Equal(t, "https://bsky.social", cfg.PDS)
	assert.Equal(t, "wss://jetstream1.us-east.bsky.network/subscribe", cfg.FirehoseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BSKY_HANDLE", "me.bsky.social")
	t.Setenv("BSKY_APP_PASSWORD", "app-password")
	t.Setenv("BSKY_PDS", "https://pds.example.com")
	t.Setenv("BSKY_FIREHOSE_URL", "wss://jetstream.example.com/subscribe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pds.example.com", cfg.PDS)
	assert.Equal(t, "wss://jetstream.example.com/subscribe", cfg.FirehoseURL)
}

func TestLoadMissingHandle(t *testing.T) {
	t.Setenv("BSKY_HANDLE", "")
	t.Setenv("BSKY_APP_PASSWORD", "app-password")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BSKY_HANDLE")
}

func TestLoadMissingPassword(t *testing.T) {
	t.Setenv("BSKY_HANDLE", "me.bsky.social")
	t.Setenv("BSKY_APP_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BSKY_APP_PASSWORD")
}
