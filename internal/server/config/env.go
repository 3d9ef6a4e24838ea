package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with process environment variables. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win over the file.
//
// Recognised variables:
//
//	PORT          listen port (EndpointAddrHTTP becomes ":PORT")
//	DATABASE_URL  full PostgreSQL DSN
//	DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
//	              DSN parts, used when DATABASE_URL is unset and DB_HOST is set
//	JWT_SECRET    token signing secret
//	REDIS_URL     denylist Redis URL
//	LOG_LEVEL     log level
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if port, ok := lookup("PORT"); ok {
		config.EndpointAddrHTTP = ":" + port
	}

	if dsn, ok := lookup("DATABASE_URL"); ok {
		config.DatabaseDSN = dsn
	} else if host, ok := lookup("DB_HOST"); ok {
		config.DatabaseDSN = buildDSN(host, os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
	}

	if secret, ok := lookup("JWT_SECRET"); ok {
		config.SecretKey = secret
	}
	if redisURL, ok := lookup("REDIS_URL"); ok {
		config.RedisURL = redisURL
	}
	if level, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = level
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func buildDSN(host, port, user, password, name string) string {
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
