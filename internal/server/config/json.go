package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/qaforum/internal/flagx"
	"github.com/dmitrijs2005/qaforum/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Duration
// fields accept "1h" style strings or integer nanoseconds. Fields left out
// of the file keep their previous values.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	HashConcurrency             int            `json:"hash_concurrency"`
	RedisURL                    string         `json:"redis_url"`
	RequestTimeout              timex.Duration `json:"request_timeout"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets into config. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.HashConcurrency > 0 {
		config.HashConcurrency = c.HashConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
