package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL = "http://localhost:8000"

	EnvBackendURL = "PLANIVA_BACKEND_URL"
	EnvLogFile    = "PLANIVA_LOG_FILE"
	EnvLogLevel   = "PLANIVA_LOG_LEVEL"

	GroupingIndian  = "indian"
	GroupingWestern = "western"
)

type Config struct {
	Backend BackendConfig `toml:"backend"`
	Display DisplayConfig `toml:"display"`
	Budget  BudgetConfig  `toml:"budget"`
	Logging LoggingConfig `toml:"logging"`
}

type BackendConfig struct {
	BaseURL               string `toml:"base_url" validate:"required,http_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" validate:"gte=0"`
	SendExistingDetails   bool   `toml:"send_existing_details"`
}

type DisplayConfig struct {
	Title          string `toml:"title" validate:"required"`
	CurrencySymbol string `toml:"currency_symbol"`
	Grouping       string `toml:"grouping" validate:"oneof=indian western"`
}

// BudgetConfig holds the budget tracker's stand-in business rules. The
// expense ratio is provisional until the backend reports real expenses.
type BudgetConfig struct {
	ProvisionalExpenseRatio float64 `toml:"provisional_expense_ratio" validate:"gte=0,lte=1"`
}

type LoggingConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: DefaultBackendURL,
		},
		Display: DisplayConfig{
			Title:          "Planiva AI Event Planner",
			CurrencySymbol: "₹",
			Grouping:       GroupingIndian,
		},
		Budget: BudgetConfig{
			ProvisionalExpenseRatio: 0.25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/planiva/config.toml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planiva", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the TOML file at path on top of the defaults. A missing
// file is not an error.
func LoadFrom(path string) (*LoadResult, error) {
	if path == "" {
		return LoadFromString("")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadFromString("")
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromString(string(data))
}

// LoadFromString parses TOML config data on top of the defaults, applies
// environment overrides and validates the result.
func LoadFromString(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	if data != "" {
		md, err := toml.Decode(data, &result.Config)
		if err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		result.Warnings = append(result.Warnings, unknownKeyWarnings(md.Undecoded())...)
	}

	applyEnv(&result.Config, os.LookupEnv)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none
// are given) into the process environment. Variables that are already set
// win. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func unknownKeyWarnings(keys []toml.Key) []string {
	undecoded := make(map[string]bool, len(keys))
	for _, k := range keys {
		undecoded[k.String()] = true
	}

	var warnings []string
	for _, k := range keys {
		// Report an unknown table once, not once per key inside it.
		if len(k) > 1 && undecoded[toml.Key(k[:len(k)-1]).String()] {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown config key: %q", k.String()))
	}
	return warnings
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBackendURL); ok && strings.TrimSpace(v) != "" {
		cfg.Backend.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		cfg.Logging.File = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

var validate = newValidator()

// Validate checks cfg, e.g. after command-line overrides were applied.
func (c Config) Validate() error {
	return validate(&c)
}

func newValidator() func(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return func(cfg *Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config validation error: %w", err)
		}

		errs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			errs = append(errs, describe(fe))
		}
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "http_url":
		return fmt.Sprintf("%s must be an http or https URL, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation, got %v", field, fe.Tag(), fe.Value())
	}
}
