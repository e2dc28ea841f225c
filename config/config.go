// Package config loads bnls settings from TOML files and BNLS_* environment
// variables using viper.
//
// Precedence, lowest to highest:
//
//	built-in defaults < /etc/bnls/config.toml < ~/.bnls/config.toml < project bnls.toml < BNLS_* env
package config

// Config is the complete bnls configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Completion CompletionConfig `mapstructure:"completion"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the language server transport
type ServerConfig struct {
	Transport      string   `mapstructure:"transport"`     // stdio, tcp or websocket
	Address        string   `mapstructure:"address"`       // listen address for tcp and websocket
	MaxDocuments   int      `mapstructure:"max_documents"` // open documents cached per session
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// VocabularyConfig configures alias extensions on top of the built-in schema
type VocabularyConfig struct {
	Extensions []string `mapstructure:"extensions"` // TOML extension files, applied in order
	Watch      bool     `mapstructure:"watch"`      // reload when config or extension files change
}

// CompletionConfig tunes candidate generation
type CompletionConfig struct {
	FreeSymbols     bool `mapstructure:"free_symbols"`
	MinSymbolLength int  `mapstructure:"min_symbol_length"`
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Transport names
const (
	TransportStdio     = "stdio"
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// File names and locations
const (
	ProjectFileName = "bnls.toml"
	UserFileName    = "config.toml"
	UserDirName     = ".bnls"
	SystemPath      = "/etc/bnls/config.toml"
	EnvPrefix       = "BNLS"
)
