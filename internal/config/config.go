// Package config loads CLI configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmoggles/blueskysocial/bluesky"
	"github.com/dmoggles/blueskysocial/firehose"
)

// Config holds all configuration for the CLI.
type Config struct {
	// Handle is the account handle used to authenticate.
	Handle string

	// AppPassword is the app password for the account.
	AppPassword string

	// PDS is the base URL of the personal data server.
	PDS string

	// FirehoseURL is the Jetstream WebSocket endpoint.
	FirehoseURL string
}

// Load reads configuration from environment variables, with a .env file in
// the working directory layered in if present.
func Load() (*Config, error) {
	// best effort, a missing .env file is fine
	_ = godotenv.Load()

	handle := os.Getenv("BSKY_HANDLE")
	if handle == "" {
		return nil, fmt.Errorf("BSKY_HANDLE is required")
	}

	password := os.Getenv("BSKY_APP_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("BSKY_APP_PASSWORD is required")
	}

	pds := os.Getenv("BSKY_PDS")
	if pds == "" {
		pds = bluesky.DefaultPDS
	}

	firehoseURL := os.Getenv("BSKY_FIREHOSE_URL")
	if firehoseURL == "" {
		firehoseURL = firehose.DefaultURL
	}

	return &Config{
		Handle:      handle,
		AppPassword: password,
		PDS:         pds,
		FirehoseURL: firehoseURL,
	}, nil
}
