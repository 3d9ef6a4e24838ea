package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/qaforum/internal/flagx"
	"github.com/dmitrijs2005/qaforum/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the file named by -c or
// -config. Missing fields keep their previous values. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
