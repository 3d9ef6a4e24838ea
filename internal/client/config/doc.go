// Package config loads runtime configuration for the forum CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the forum HTTP API
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "request_timeout": "10s"
//	}
package config
