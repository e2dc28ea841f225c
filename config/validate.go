package config

import (
	"net"

	"github.com/bnlang/bnls/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio:
	case TransportTCP, TransportWebSocket:
		if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
			return errors.WithHint(
				errors.NewInvalidRequestError("server.address %q is not host:port: %v", c.Server.Address, err),
				"for example "+DefaultAddress,
			)
		}
	default:
		return errors.WithHint(
			errors.NewInvalidRequestError("server.transport must be stdio, tcp or websocket, got %q", c.Server.Transport),
			"omit server.transport to use stdio",
		)
	}

	// 0 is invalid (omit for default)
	if c.Server.MaxDocuments <= 0 {
		return errors.NewInvalidRequestError("server.max_documents must be > 0, got %d (omit for default %d)",
			c.Server.MaxDocuments, DefaultMaxDocuments)
	}

	for i, origin := range c.Server.AllowedOrigins {
		if origin == "" {
			return errors.NewInvalidRequestError("server.allowed_origins[%d] is empty", i)
		}
	}

	for i, path := range c.Vocabulary.Extensions {
		if path == "" {
			return errors.NewInvalidRequestError("vocabulary.extensions[%d] is empty", i)
		}
	}

	if c.Completion.MinSymbolLength < 1 {
		return errors.NewInvalidRequestError("completion.min_symbol_length must be >= 1, got %d",
			c.Completion.MinSymbolLength)
	}

	return nil
}
