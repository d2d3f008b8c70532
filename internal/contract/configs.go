package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/quantfold/keydriver/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 4
)

// DefaultWorkers is the default number of concurrent workers for subset fits.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for an analysis.
// This struct is the "final, validated" config.
type Config struct {
	DataFile string
	Format   schema.DataFormat

	Outcome string
	Drivers []string
	Weight  string            // optional weight column, "" for unweighted
	Labels  map[string]string // display labels keyed by column name

	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // please use env var as this is plaintext

	UseEmojis bool
	UseColors bool
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a prefix is set.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Clone returns a shallow copy of the config with its own copies of the
// slice and map fields, so per-request overrides never mutate the base.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Drivers = append([]string(nil), c.Drivers...)
	if c.Labels != nil {
		clone.Labels = make(map[string]string, len(c.Labels))
		for k, v := range c.Labels {
			clone.Labels[k] = v
		}
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataFileStr string

	Format         string            `mapstructure:"format"`
	Outcome        string            `mapstructure:"outcome"`
	Drivers        string            `mapstructure:"drivers"`
	Weight         string            `mapstructure:"weight"`
	Labels         map[string]string `mapstructure:"labels"`
	Workers        int               `mapstructure:"workers"`
	Precision      int               `mapstructure:"precision"`
	Output         string            `mapstructure:"output"`
	OutputFile     string            `mapstructure:"output-file"`
	Width          int               `mapstructure:"width"`
	StoreBackend   string            `mapstructure:"store-backend"`
	StoreDBConnect string            `mapstructure:"store-db-connect"`
	Emoji          string            `mapstructure:"emoji"`
	Color          string            `mapstructure:"color"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Data file and format ---
	cfg.DataFile = input.DataFileStr

	format := schema.DataFormat(strings.ToLower(input.Format))
	if format == "" {
		format = schema.AutoFormat
	}
	if _, ok := schema.ValidDataFormats[format]; !ok {
		return fmt.Errorf("invalid format '%s'. must be auto, csv, parquet", input.Format)
	}
	cfg.Format = format

	// --- 2. Column selection ---
	cfg.Outcome = strings.TrimSpace(input.Outcome)
	if cfg.Outcome == "" {
		return fmt.Errorf("--outcome is required")
	}

	cfg.Drivers = splitList(input.Drivers)
	if len(cfg.Drivers) == 0 {
		return fmt.Errorf("--drivers is required (comma-separated column names)")
	}

	cfg.Weight = strings.TrimSpace(input.Weight)
	cfg.Labels = input.Labels

	// --- 3. Workers ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 4. Precision and output ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 5. Run store ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be none, sqlite, mysql, postgresql", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 6. Presentation toggles ---
	cfg.UseEmojis = parseYesNo(input.Emoji, false)
	cfg.UseColors = parseYesNo(input.Color, true)

	return nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseYesNo interprets yes/no style toggles, falling back to a default.
func parseYesNo(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true
	case "no", "n", "false", "0", "off":
		return false
	default:
		return def
	}
}
