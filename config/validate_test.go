package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnlang/bnls/errors"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Transport:      TransportStdio,
			Address:        DefaultAddress,
			MaxDocuments:   DefaultMaxDocuments,
			AllowedOrigins: DefaultAllowedOrigins,
		},
		Vocabulary: VocabularyConfig{Watch: true},
		Completion: CompletionConfig{FreeSymbols: true, MinSymbolLength: 2},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"tcp", func(c *Config) { c.Server.Transport = TransportTCP }, ""},
		{"websocket on any interface", func(c *Config) {
			c.Server.Transport = TransportWebSocket
			c.Server.Address = ":8080"
		}, ""},
		{"stdio ignores address", func(c *Config) { c.Server.Address = "" }, ""},
		{"unknown transport", func(c *Config) { c.Server.Transport = "pipe" }, "server.transport"},
		{"bad address", func(c *Config) {
			c.Server.Transport = TransportTCP
			c.Server.Address = "localhost"
		}, "server.address"},
		{"zero documents", func(c *Config) { c.Server.MaxDocuments = 0 }, "server.max_documents"},
		{"empty origin", func(c *Config) { c.Server.AllowedOrigins = []string{"http://localhost", ""} }, "allowed_origins[1]"},
		{"empty extension", func(c *Config) { c.Vocabulary.Extensions = []string{""} }, "vocabulary.extensions[0]"},
		{"zero min length", func(c *Config) { c.Completion.MinSymbolLength = 0 }, "min_symbol_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
		})
	}
}
