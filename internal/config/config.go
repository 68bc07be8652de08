// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/portfolio-picker/internal/dataset"
	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for portfolio-picker.
type Configuration struct {
	Dataset   DatasetConfig   `yaml:"dataset,omitempty" mapstructure:"dataset"`
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging   LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
}

// DatasetConfig locates the share list and its columns.
type DatasetConfig struct {
	Path    string          `yaml:"path,omitempty" mapstructure:"path"`
	Columns dataset.Columns `yaml:"columns,omitempty" mapstructure:"columns"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
	CurrencySymbol string `yaml:"currencySymbol,omitempty" mapstructure:"currencySymbol"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads defaults and environment
// overrides only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. An empty path loads
// .env from the working directory if it exists.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(constants.DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = constants.DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("dataset.path", "")
	v.SetDefault("dataset.columns.name", "")
	v.SetDefault("dataset.columns.cost", "")
	v.SetDefault("dataset.columns.percent", "")
	v.SetDefault("optimizer.budget", constants.DefaultBudget)
	v.SetDefault("optimizer.precision", constants.DefaultPrecision)
	v.SetDefault("optimizer.valuePrecision", constants.DefaultValuePrecision)
	v.SetDefault("optimizer.maxCapacityUnits", constants.DefaultMaxCapacityUnits)
	v.SetDefault("optimizer.maxTableCells", constants.DefaultMaxTableCells)
	v.SetDefault("optimizer.invalidItems", constants.InvalidItemsReject)
	v.SetDefault("optimizer.algorithm", constants.AlgorithmDynamic)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.currencySymbol", constants.DefaultCurrencySymbol)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Optimizer.Normalize()
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are legal but worth a second look.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if strings.TrimSpace(c.Dataset.Path) == "" {
		warnings = append(warnings, "no dataset path configured")
	}
	if c.Optimizer.Algorithm == constants.AlgorithmExhaustive {
		warnings = append(warnings, fmt.Sprintf("exhaustive search is limited to %d items within budget", constants.MaxExhaustiveItems))
	}
	if c.Optimizer.InvalidItems == constants.InvalidItemsSkip {
		warnings = append(warnings, "invalid items are skipped instead of rejected")
	}
	if budget, err := c.Optimizer.BudgetAmount(); err == nil && budget.IsZero() {
		warnings = append(warnings, "budget is zero, no item can be selected")
	}
	return warnings
}
