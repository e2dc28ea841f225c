package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/bnlang/bnls/errors"
)

// Paths are the configuration files consulted, lowest precedence first.
// Empty paths are skipped.
type Paths struct {
	System  string
	User    string
	Project string
}

// files lists the non-empty paths in precedence order.
func (p Paths) files() []fileSource {
	var out []fileSource
	for _, f := range []fileSource{
		{SourceSystem, p.System},
		{SourceUser, p.User},
		{SourceProject, p.Project},
	} {
		if f.path != "" {
			out = append(out, f)
		}
	}
	return out
}

type fileSource struct {
	source Source
	path   string
}

// DefaultPaths returns the system, user and nearest project config paths.
func DefaultPaths() Paths {
	p := Paths{System: SystemPath}
	if home, err := os.UserHomeDir(); err == nil {
		p.User = filepath.Join(home, UserDirName, UserFileName)
	}
	if wd, err := os.Getwd(); err == nil {
		p.Project = FindProjectConfig(wd)
	}
	return p
}

// FindProjectConfig searches for bnls.toml by walking up from dir.
// Returns the first file found, or empty string if none found.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Loaded is the result of one configuration load
type Loaded struct {
	Config  *Config
	Viper   *viper.Viper
	Paths   Paths
	Files   []string              // files that existed and were merged
	Unknown []string              // keys in config files bnls does not use
	sources map[string]SourceInfo // key -> file that set it
}

// Load reads configuration from the default locations
func Load() (*Loaded, error) {
	return LoadFrom(DefaultPaths())
}

// LoadFrom reads configuration from explicit paths. Missing files are
// skipped; malformed files are errors.
func LoadFrom(paths Paths) (*Loaded, error) {
	v := newViper()

	l := &Loaded{
		Viper:   v,
		Paths:   paths,
		sources: make(map[string]SourceInfo),
	}
	if err := l.mergeConfigFiles(); err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	l.Config = cfg
	return l, nil
}

// LoadWithViper unmarshals configuration from a prepared viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// newViper initializes viper with environment binding and defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// mergeConfigFiles merges each file's known keys over the previous ones.
// Relative extension paths are resolved against the declaring file.
func (l *Loaded) mergeConfigFiles() error {
	known := knownKeys()

	for _, f := range l.Paths.files() {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}

		temp := viper.New()
		temp.SetConfigFile(f.path)
		temp.SetConfigType("toml")
		if err := temp.ReadInConfig(); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", f.path),
				"fix the TOML syntax or remove the file",
			)
		}

		settings := make(map[string]any)
		for _, key := range temp.AllKeys() {
			if !known[key] {
				l.Unknown = append(l.Unknown, key)
				continue
			}
			value := temp.Get(key)
			if key == "vocabulary.extensions" {
				value = resolvePaths(filepath.Dir(f.path), temp.GetStringSlice(key))
			}
			setNested(settings, key, value)
			l.sources[key] = SourceInfo{Source: f.source, Path: f.path}
		}
		// the config layer sits below BNLS_* variables; Set would shadow them
		if err := l.Viper.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", f.path)
		}
		l.Files = append(l.Files, f.path)
	}
	sort.Strings(l.Unknown)
	return nil
}

// setNested stores value under a dotted key in nested maps
func setNested(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func resolvePaths(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if p != "" && !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out[i] = p
	}
	return out
}

func knownKeys() map[string]bool {
	v := viper.New()
	SetDefaults(v)
	keys := make(map[string]bool)
	for _, k := range v.AllKeys() {
		keys[k] = true
	}
	return keys
}

// Get returns the effective value of a dotted key
func (l *Loaded) Get(key string) (any, error) {
	key = strings.ToLower(key)
	if !knownKeys()[key] {
		return nil, errors.WithHint(
			errors.NewNotFoundError("unknown config key %q", key),
			"run 'bnls config show' to list keys",
		)
	}
	return l.Viper.Get(key), nil
}
