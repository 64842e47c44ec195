package config

import (
	"reflect"
	"strings"

	"auction-courier/core/bridge"
	"auction-courier/core/docstore"
	"auction-courier/core/feed"
	"auction-courier/core/gateway"
	"auction-courier/core/logger"
	"auction-courier/core/mapping"
	"auction-courier/core/server"
	"auction-courier/feature/directlock"
	"auction-courier/feature/embedded"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the worker.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Feed holds configuration for the auction changes feed.
	Feed feed.Config `mapstructure:"feed"`
	// Lots, Auctions, Assets and Contracts configure the resource APIs.
	Lots      gateway.Config `mapstructure:"lots"`
	Auctions  gateway.Config `mapstructure:"auctions"`
	Assets    gateway.Config `mapstructure:"assets"`
	Contracts gateway.Config `mapstructure:"contracts"`
	// TargetDocs configures the destination document store.
	TargetDocs docstore.Config `mapstructure:"target_docs"`
	// Mapping holds configuration for the processed-auctions store.
	Mapping mapping.Config `mapstructure:"mapping"`
	// Bridge holds configuration for the document transfer bridge.
	Bridge bridge.Config `mapstructure:"bridge"`
	// Server holds configuration for the status endpoint.
	Server server.Config `mapstructure:"server"`
	// DirectLock and Embedded declare the handled auction families.
	DirectLock directlock.Config `mapstructure:"directlock"`
	Embedded   embedded.Config   `mapstructure:"embedded"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FEED_URL -> feed.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
