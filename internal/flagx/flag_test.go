package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", ":5000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", ":5000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-d", "postgres://x"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "equals value may start with dash",
			args:         []string{"--config=--weird.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--weird.json"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-a", ":8080", "-s", "secret", "--other", "x"},
			allowedFlags: []string{"-s", "-a"},
			want:         []string{"-a", ":8080", "-s", "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "forum.json", ConfigPath([]string{"-a", ":5000", "-c", "forum.json"}))
	assert.Equal(t, "alt.json", ConfigPath([]string{"-config=alt.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":5000"}))
	assert.Equal(t, "", ConfigPath(nil))
}
