package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Version is the only supported config file version.
const Version = 1

// DirName is the metadata directory at the repository root.
const DirName = ".codereports"

const fileName = "config.yaml"

var (
	// ErrNotInitialized is returned when the config file does not exist.
	ErrNotInitialized = errors.New("config not found")
	// ErrUnsupportedVersion is returned for config files of another version.
	ErrUnsupportedVersion = errors.New("unsupported config version")
	// ErrTagNotConfigured is returned when a known tag is absent from the config.
	ErrTagNotConfigured = errors.New("tag is not defined in config")
	// ErrTagDisabled is returned when adding a report with a disabled tag.
	ErrTagDisabled = errors.New("tag is disabled in config")
)

// TagConfig tunes a single tag.
type TagConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	Severity string `yaml:"severity" mapstructure:"severity" json:"severity"`
	Expires  *int   `yaml:"expires,omitempty" mapstructure:"expires" json:"expires,omitempty"`
}

// Config represents .codereports/config.yaml.
type Config struct {
	Version int                  `yaml:"version" mapstructure:"version" json:"version"`
	Tags    map[string]TagConfig `yaml:"tags" mapstructure:"tags" json:"tags"`
}

func days(n int) *int { return &n }

// Default returns the configuration written by `codereport init`.
func Default() Config {
	return Config{
		Version: Version,
		Tags: map[string]TagConfig{
			string(TagTodo):     {Enabled: true, Severity: string(SeverityLow)},
			string(TagRefactor): {Enabled: true, Severity: string(SeverityMedium), Expires: days(180)},
			string(TagBuggy):    {Enabled: true, Severity: string(SeverityHigh), Expires: days(90)},
			string(TagCritical): {Enabled: true, Severity: string(SeverityBlocking), Expires: days(14)},
		},
	}
}

// Dir returns the metadata directory for a repository root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// Path returns the config file path for a repository root, honouring
// CODEREPORT_CONFIG.
func Path(root string) string {
	v := viper.New()
	v.SetEnvPrefix("CODEREPORT")
	_ = v.BindEnv("config")
	if p := v.GetString("config"); p != "" {
		return p
	}
	return filepath.Join(Dir(root), fileName)
}

// Load reads and validates the config for a repository root.
func Load(root string) (Config, error) {
	path := Path(root)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.WithHint(
				errors.Wrapf(ErrNotInitialized, "%s", path),
				"run 'codereport init' first")
		}
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", fileName)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the version and every tag severity.
func (c Config) Validate() error {
	if c.Version != Version {
		return errors.Wrapf(ErrUnsupportedVersion, "%d (expected %d)", c.Version, Version)
	}
	for _, name := range c.TagNames() {
		if _, err := ParseSeverity(c.Tags[name].Severity); err != nil {
			return errors.Wrapf(err, "tag '%s'", name)
		}
	}
	return nil
}

// TagNames returns the configured tag names sorted alphabetically.
func (c Config) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for name := range c.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes cfg as YAML, creating the metadata directory if needed.
func Save(root string, cfg Config) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "serialize config")
	}
	return data, nil
}

// ValidateTagForAdd parses s and checks that the tag is configured and enabled.
func (c Config) ValidateTagForAdd(s string) (Tag, error) {
	tag, err := ParseTag(s)
	if err != nil {
		return "", err
	}
	tc, ok := c.Tags[string(tag)]
	if !ok {
		return "", errors.Wrapf(ErrTagNotConfigured, "'%s'", tag)
	}
	if !tc.Enabled {
		return "", errors.Wrapf(ErrTagDisabled, "'%s'", tag)
	}
	return tag, nil
}

// ExpiresDays returns the expiry for tag, if any.
func (c Config) ExpiresDays(tag Tag) (int, bool) {
	tc, ok := c.Tags[string(tag)]
	if !ok || tc.Expires == nil {
		return 0, false
	}
	return *tc.Expires, true
}

// SeverityOf returns the configured severity of tag.
func (c Config) SeverityOf(tag Tag) (Severity, error) {
	tc, ok := c.Tags[string(tag)]
	if !ok {
		return "", errors.Wrapf(ErrTagNotConfigured, "'%s'", tag)
	}
	return ParseSeverity(tc.Severity)
}

// SetField sets a tag option from a "tag.field" key, where field is
// enabled, severity or expires. An expires value of "none" clears it.
func SetField(cfg *Config, key, value string) error {
	name, field, ok := strings.Cut(key, ".")
	if !ok {
		return errors.WithHint(errors.Newf("invalid key: %s", key), "use <tag>.<enabled|severity|expires>")
	}
	tag, err := ParseTag(name)
	if err != nil {
		return err
	}
	if cfg.Tags == nil {
		cfg.Tags = make(map[string]TagConfig)
	}
	tc, exists := cfg.Tags[string(tag)]
	if !exists {
		tc = TagConfig{Enabled: true, Severity: string(SeverityLow)}
	}

	switch field {
	case "enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Newf("invalid value for %s: %s (expected true or false)", key, value)
		}
		tc.Enabled = b
	case "severity":
		sev, err := ParseSeverity(value)
		if err != nil {
			return err
		}
		tc.Severity = string(sev)
	case "expires":
		if strings.EqualFold(value, "none") {
			tc.Expires = nil
			break
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.Newf("invalid value for %s: %s (expected days or none)", key, value)
		}
		tc.Expires = &n
	default:
		return errors.Newf("unknown field: %s", field)
	}

	cfg.Tags[string(tag)] = tc
	return nil
}
