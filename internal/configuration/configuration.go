// Package configuration implements reading and mapping of the application's
// environment-file based configuration.
package configuration

import (
	"strconv"
	"time"

	"github.com/soyuka/asyncfs/internal/schema"
)

const (
	// KeyMaxWorkers sets the maximum concurrently executing non-blocking
	// operations.
	KeyMaxWorkers = "AFS_MAX_WORKERS"

	// KeyPollIntervalMs sets the stat-polling interval for poll watches, in
	// milliseconds.
	KeyPollIntervalMs = "AFS_POLL_INTERVAL_MS"

	// KeyFilenameEncoding sets the filename delivery encoding for watch
	// events ("utf8" or "raw").
	KeyFilenameEncoding = "AFS_FILENAME_ENCODING"

	// EncodingNameRaw is the configuration value selecting raw byte
	// filenames.
	EncodingNameRaw = "raw"

	defaultMaxWorkers = 4
)

// Config holds the effective application configuration.
type Config struct {
	MaxWorkers   int64
	PollInterval time.Duration
	Encoding     schema.FilenameEncoding
}

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation structure of the configuration.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// Load reads the given environment files and maps them onto a [Config],
// falling back to defaults for absent or unparseable keys. With no filenames
// given, the defaults are returned outright.
func (c *Handler) Load(filenames ...string) (*Config, error) {
	config := &Config{
		MaxWorkers:   defaultMaxWorkers,
		PollInterval: 0,
		Encoding:     schema.EncodingUTF8,
	}

	if len(filenames) == 0 {
		return config, nil
	}

	envMap, err := c.GenericHandler.Read(filenames...)
	if err != nil {
		return nil, err
	}

	if workers := c.MapKeyToInt64(envMap, KeyMaxWorkers); workers > 0 {
		config.MaxWorkers = workers
	}

	if interval := c.MapKeyToInt64(envMap, KeyPollIntervalMs); interval > 0 {
		config.PollInterval = time.Duration(interval) * time.Millisecond
	}

	if c.MapKeyToString(envMap, KeyFilenameEncoding) == EncodingNameRaw {
		config.Encoding = schema.EncodingRaw
	}

	return config, nil
}

// MapKeyToString maps an environment key to its string value, with the empty
// string for an absent key.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt maps an environment key to an integer value, with -1 for an
// absent or unparseable key.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToInt64 maps an environment key to a 64-bit integer value, with -1
// for an absent or unparseable key.
func (c *Handler) MapKeyToInt64(envMap map[string]string, key string) int64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return -1
	}

	return intValue
}
