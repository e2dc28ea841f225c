package config

import "github.com/spf13/viper"

// Default values
const (
	DefaultTransport       = TransportStdio
	DefaultAddress         = "127.0.0.1:7997"
	DefaultMaxDocuments    = 100
	DefaultMinSymbolLength = 2
)

// DefaultAllowedOrigins are accepted for WebSocket upgrades unless configured
var DefaultAllowedOrigins = []string{
	"http://localhost",
	"https://localhost",
	"http://127.0.0.1",
	"https://127.0.0.1",
	"vscode-webview://",
}

// SetDefaults configures default values for all configuration options.
// Every key needs a default so that BNLS_* variables reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.transport", DefaultTransport)
	v.SetDefault("server.address", DefaultAddress)
	v.SetDefault("server.max_documents", DefaultMaxDocuments)
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("vocabulary.extensions", []string{})
	v.SetDefault("vocabulary.watch", true)

	v.SetDefault("completion.free_symbols", true)
	v.SetDefault("completion.min_symbol_length", DefaultMinSymbolLength)

	v.SetDefault("log.json", false)
}
