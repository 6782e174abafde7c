package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration. Defaults target the docker
// compose setup; every value can be overridden through NETWORTH_-prefixed
// environment variables or an optional config file.
type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	Port string

	ProviderBaseURL string
	ProviderTimeout time.Duration

	DefaultCurrency string

	SnapshotInterval      time.Duration
	RefreshInterval       time.Duration
	TransactionFetchLimit int
	WriteWorkers          int
}

// Load reads configuration from defaults, an optional config file
// (NETWORTH_CONFIG) and NETWORTH_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("postgres.address", "localhost")
	v.SetDefault("postgres.port", "5433")
	v.SetDefault("postgres.db", "postgres")
	v.SetDefault("postgres.username", "postgres")
	v.SetDefault("postgres.password", "testpassword")
	v.SetDefault("port", "9446")
	v.SetDefault("provider.base_url", "http://localhost:9447")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("default_currency", "EUR")
	v.SetDefault("snapshot.interval", "24h")
	v.SetDefault("refresh.interval", "6h")
	v.SetDefault("refresh.transaction_fetch_limit", 100)
	v.SetDefault("write_workers", 4)

	v.SetEnvPrefix("NETWORTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath := os.Getenv("NETWORTH_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{
		PostgresAddress:       v.GetString("postgres.address"),
		PostgresPort:          v.GetString("postgres.port"),
		PostgresDB:            v.GetString("postgres.db"),
		PostgresUsername:      v.GetString("postgres.username"),
		PostgresPassword:      v.GetString("postgres.password"),
		Port:                  v.GetString("port"),
		ProviderBaseURL:       v.GetString("provider.base_url"),
		ProviderTimeout:       v.GetDuration("provider.timeout"),
		DefaultCurrency:       v.GetString("default_currency"),
		SnapshotInterval:      v.GetDuration("snapshot.interval"),
		RefreshInterval:       v.GetDuration("refresh.interval"),
		TransactionFetchLimit: v.GetInt("refresh.transaction_fetch_limit"),
		WriteWorkers:          v.GetInt("write_workers"),
	}, nil
}
