// Package config loads algoprof settings from defaults, an optional YAML
// file, ALGOPROF_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math/bits"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// Production logs JSON; Development logs a human-readable console format.
	Production  = "production"
	Development = "development"

	// EnvPrefix prefixes every environment variable, e.g. ALGOPROF_TRY_FOR.
	EnvPrefix = "ALGOPROF"

	defaultTryFor          = 10 * time.Second
	defaultCalibrationWait = 100 * time.Millisecond
	defaultZoneCapacity    = 256
	defaultRounds          = 1
	defaultChunkSize       = 64 * humanize.KiByte
	defaultCacheSize       = 64 * humanize.MiByte
	defaultCacheMinRegion  = humanize.KiByte
	defaultResultsFile     = ".algoprof/results.json"
	defaultThreshold       = 5.0
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ByteSize is a byte count that also decodes from strings like "64KiB".
type ByteSize uint64

// String formats b with binary units, e.g. "64 KiB".
func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// Config is the decoded configuration of the algoprof command.
type Config struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`

	// TryFor is how long a wave runs without a new minimum.
	TryFor time.Duration `mapstructure:"try_for"`
	// CalibrationWait is the busy-wait used to estimate the tick frequency.
	CalibrationWait time.Duration `mapstructure:"calibration_wait"`

	ZoneCapacity     int      `mapstructure:"zone_capacity"`
	PrintNewMinimums bool     `mapstructure:"print_new_minimums"`
	PageFaults       bool     `mapstructure:"page_faults"`
	Rounds           int      `mapstructure:"rounds"`
	Parallel         bool     `mapstructure:"parallel"`
	ChunkSize        ByteSize `mapstructure:"chunk_size"`
	// Profile prints a zone profile of the suite itself.
	Profile bool `mapstructure:"profile"`

	Cache   CacheConfig   `mapstructure:"cache"`
	Results ResultsConfig `mapstructure:"results"`

	// MetricsFile receives a Prometheus textfile export when set.
	MetricsFile string `mapstructure:"metrics_file"`
}

// CacheConfig sets up the cache-region sweep.
type CacheConfig struct {
	Size      ByteSize `mapstructure:"size"`
	MinRegion ByteSize `mapstructure:"min_region"`
	// MaxRegion defaults to Size.
	MaxRegion ByteSize `mapstructure:"max_region"`
}

// ResultsConfig controls the run history and comparison.
type ResultsConfig struct {
	File      string  `mapstructure:"file"`
	Save      bool    `mapstructure:"save"`
	Compare   bool    `mapstructure:"compare"`
	Threshold float64 `mapstructure:"threshold"`
}

// New returns a viper instance with every default and the environment
// bindings set.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", Development)
	v.SetDefault("debug", false)
	v.SetDefault("try_for", defaultTryFor)
	v.SetDefault("calibration_wait", defaultCalibrationWait)
	v.SetDefault("zone_capacity", defaultZoneCapacity)
	v.SetDefault("print_new_minimums", true)
	v.SetDefault("page_faults", true)
	v.SetDefault("rounds", defaultRounds)
	v.SetDefault("parallel", false)
	v.SetDefault("chunk_size", defaultChunkSize)
	v.SetDefault("profile", false)
	v.SetDefault("cache.size", defaultCacheSize)
	v.SetDefault("cache.min_region", defaultCacheMinRegion)
	v.SetDefault("cache.max_region", 0)
	v.SetDefault("results.file", defaultResultsFile)
	v.SetDefault("results.save", false)
	v.SetDefault("results.compare", false)
	v.SetDefault("results.threshold", defaultThreshold)
	v.SetDefault("metrics_file", "")

	return v
}

// Load reads the config file and decodes v. An empty file searches for
// algoprof.yaml in the working directory, which may be absent; an explicit
// file must exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("algoprof")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("viper read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode decodes and validates the settings in v without reading a file.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config

	decoderConfig := &mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToByteSizeHookFunc(),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func stringToByteSizeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeFor[ByteSize]() {
			return data, nil
		}

		n, err := humanize.ParseBytes(data.(string))
		if err != nil {
			return nil, fmt.Errorf("parse byte size %q: %w", data, err)
		}

		return ByteSize(n), nil
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Cache.MaxRegion == 0 {
		cfg.Cache.MaxRegion = cfg.Cache.Size
	}
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	valid := []string{Production, Development}
	check(slices.Contains(valid, c.Environment),
		"invalid environment '%s'. Must be one of: %s", c.Environment, strings.Join(valid, ", "))
	check(c.TryFor > 0, "try_for must be positive, got %s", c.TryFor)
	check(c.CalibrationWait > 0, "calibration_wait must be positive, got %s", c.CalibrationWait)
	check(c.ZoneCapacity > 0, "zone_capacity must be positive, got %d", c.ZoneCapacity)
	check(c.Rounds >= 0, "rounds must not be negative, got %d", c.Rounds)
	check(c.ChunkSize > 0, "chunk_size must be positive")
	check(c.Results.Threshold >= 0, "results.threshold must not be negative, got %g", c.Results.Threshold)
	check(c.Results.File != "", "results.file must be set")

	check(c.Cache.Size > 0 && c.Cache.Size%8 == 0, "cache.size must be a positive multiple of 8, got %d", c.Cache.Size)
	check(isPow2(c.Cache.MinRegion) && c.Cache.MinRegion >= 8,
		"cache.min_region must be a power of two of at least 8, got %d", c.Cache.MinRegion)
	check(isPow2(c.Cache.MaxRegion) || c.Cache.MaxRegion == c.Cache.Size,
		"cache.max_region must be a power of two, got %d", c.Cache.MaxRegion)
	check(c.Cache.MinRegion <= c.Cache.MaxRegion && c.Cache.MaxRegion <= c.Cache.Size,
		"cache regions must satisfy min_region <= max_region <= size")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Regions returns the power-of-two cache regions from MinRegion up to
// MaxRegion.
func (c CacheConfig) Regions() []int {
	var out []int

	for r := c.MinRegion; r > 0 && r <= c.MaxRegion; r <<= 1 {
		out = append(out, int(r))
	}

	return out
}

func isPow2(b ByteSize) bool {
	return bits.OnesCount64(uint64(b)) == 1
}
