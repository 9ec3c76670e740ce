package config

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/naming"
	"github.com/toyz/navgen/internal/utils"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "NAVGEN"

// FileName is the project configuration file searched for when none is given
const FileName = ".navgen.yaml"

// Config holds every setting navgen reads from file, environment and flags
type Config struct {
	Indent          string   `mapstructure:"indent"`
	Wrapper         string   `mapstructure:"wrapper"`
	ViewSuffix      string   `mapstructure:"view_suffix"`
	ViewInitializer string   `mapstructure:"view_initializer"`
	FileExtensions  []string `mapstructure:"file_extensions"`
	SkipDirs        []string `mapstructure:"skip_dirs"`
	Jobs            int      `mapstructure:"jobs"`

	// File is the configuration file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// ConfigFile is an explicit configuration file; it must exist
	ConfigFile string
	// Dir is searched for FileName when ConfigFile is empty
	Dir string
	// Overrides take precedence over every other source, typically changed flags
	Overrides map[string]any
}

var initializerPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*(\(([\p{L}_][\p{L}\p{N}_]*:)*\))?$`)

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	defaults := models.DefaultGenerationOptions()
	v.SetDefault("indent", "    ")
	v.SetDefault("wrapper", defaults.Wrapper)
	v.SetDefault("view_suffix", defaults.ViewSuffix)
	v.SetDefault("view_initializer", defaults.ViewInitializer)
	v.SetDefault("file_extensions", utils.DefaultExtensions)
	v.SetDefault("skip_dirs", utils.DefaultSkipDirs)
	v.SetDefault("jobs", 0)
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	cfg, err := LoadWithViper(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration with precedence defaults < file < environment < overrides
func Load(opts LoadOptions) (*Config, error) {
	v := newViper()

	path := opts.ConfigFile
	optional := path == ""
	if optional {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, FileName)
	}

	found := true
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !optional || !isNotExist(err) {
			return nil, errors.WrapConfigurationError(path, "read", err)
		}
		found = false
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if found {
		cfg.File = path
	}
	return cfg, nil
}

// LoadWithViper decodes and validates configuration from a prepared viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("viper", "unmarshal", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Indent == "" || strings.Trim(c.Indent, " \t") != "" {
		return errors.ConfigurationError("indent", "must be a non-empty run of spaces or tabs")
	}
	if !naming.IsIdentifier(c.Wrapper) {
		return errors.ConfigurationError("wrapper", "must be a Swift identifier, got "+quote(c.Wrapper))
	}
	if !naming.IsIdentifier(c.ViewSuffix) {
		return errors.ConfigurationError("view_suffix", "must be a Swift identifier, got "+quote(c.ViewSuffix))
	}
	if !initializerPattern.MatchString(c.ViewInitializer) {
		return errors.ConfigurationError("view_initializer", "must be a member name such as init or init(store:), got "+quote(c.ViewInitializer))
	}
	if len(c.FileExtensions) == 0 {
		return errors.ConfigurationError("file_extensions", "at least one extension is required")
	}
	for _, ext := range c.FileExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.ConfigurationError("file_extensions", "extensions start with a dot, got "+quote(ext))
		}
	}
	if c.Jobs < 0 {
		return errors.ConfigurationError("jobs", "must not be negative")
	}
	return nil
}

// Workers returns the effective parallelism, GOMAXPROCS when Jobs is zero
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// GenerationOptions returns the options passed to the macro expanders
func (c *Config) GenerationOptions() models.GenerationOptions {
	return models.GenerationOptions{
		Wrapper:         c.Wrapper,
		ViewSuffix:      c.ViewSuffix,
		ViewInitializer: c.ViewInitializer,
	}
}

// FileProcessor returns a file processor honoring the configured extensions and skip list
func (c *Config) FileProcessor() *utils.FileProcessor {
	return utils.NewFileProcessorWith(c.FileExtensions, c.SkipDirs)
}

func quote(s string) string {
	return `"` + s + `"`
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if stderrors.As(err, &notFound) {
		return true
	}
	return stderrors.Is(err, fs.ErrNotExist)
}
