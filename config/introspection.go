package config

import (
	"os"
	"sort"
	"strings"
)

// Source represents where a configuration value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceSystem      Source = "system"      // /etc/bnls/config.toml
	SourceUser        Source = "user"        // ~/.bnls/config.toml
	SourceProject     Source = "project"     // nearest bnls.toml
	SourceEnvironment Source = "environment" // BNLS_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source Source `json:"source"`
	Path   string `json:"path,omitempty"` // file path or environment variable name
}

// SettingInfo is one effective setting with its origin
type SettingInfo struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	SourceInfo
}

// Settings lists every effective setting, sorted by key
func (l *Loaded) Settings() []SettingInfo {
	keys := l.Viper.AllKeys()
	sort.Strings(keys)

	out := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		out = append(out, SettingInfo{
			Key:        key,
			Value:      l.Viper.Get(key),
			SourceInfo: l.SourceOf(key),
		})
	}
	return out
}

// SourceOf reports which layer supplied key
func (l *Loaded) SourceOf(key string) SourceInfo {
	envKey := EnvVar(key)
	if _, ok := os.LookupEnv(envKey); ok {
		return SourceInfo{Source: SourceEnvironment, Path: envKey}
	}
	if si, ok := l.sources[key]; ok {
		return si
	}
	return SourceInfo{Source: SourceDefault}
}

// EnvVar returns the environment variable that overrides key
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// AllSettings returns the effective settings as nested maps
func (l *Loaded) AllSettings() map[string]any {
	return l.Viper.AllSettings()
}
