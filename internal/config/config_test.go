package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/portfolio-picker/pkg/constants"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Defaults only",
			configPath: "",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Optimizer.Budget != constants.DefaultBudget {
		t.Errorf("expected default budget %s, got %s", constants.DefaultBudget, conf.Optimizer.Budget)
	}
	if *conf.Optimizer.Precision != constants.DefaultPrecision {
		t.Errorf("expected precision %d, got %d", constants.DefaultPrecision, *conf.Optimizer.Precision)
	}
	if *conf.Optimizer.ValuePrecision != constants.DefaultValuePrecision {
		t.Errorf("expected value precision %d, got %d", constants.DefaultValuePrecision, *conf.Optimizer.ValuePrecision)
	}
	if conf.Optimizer.MaxCapacityUnits != constants.DefaultMaxCapacityUnits {
		t.Errorf("unexpected max capacity units %d", conf.Optimizer.MaxCapacityUnits)
	}
	if conf.Optimizer.Algorithm != constants.AlgorithmDynamic {
		t.Errorf("expected dynamic algorithm, got %s", conf.Optimizer.Algorithm)
	}
	if conf.Optimizer.InvalidItems != constants.InvalidItemsReject {
		t.Errorf("expected reject mode, got %s", conf.Optimizer.InvalidItems)
	}
	if conf.Logging.Level != "info" || conf.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults %+v", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("expected pretty output, got %s", conf.Output.Format)
	}
	if conf.Output.CurrencySymbol != constants.DefaultCurrencySymbol {
		t.Errorf("expected currency symbol %s, got %s", constants.DefaultCurrencySymbol, conf.Output.CurrencySymbol)
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dataset:
  path: shares.csv
  columns:
    name: Share
    cost: Cost per share
    percent: Profit
optimizer:
  budget: 750.50
  precision: 0
  maxCapacityUnits: 5000
  invalidItems: SKIP
  algorithm: bruteforce
logging:
  level: debug
  format: console
output:
  format: csv
  currencySymbol: "$"
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Dataset.Path != "shares.csv" {
		t.Errorf("expected dataset path shares.csv, got %q", conf.Dataset.Path)
	}
	if conf.Dataset.Columns.Name != "Share" || conf.Dataset.Columns.Cost != "Cost per share" || conf.Dataset.Columns.Percent != "Profit" {
		t.Errorf("unexpected columns %+v", conf.Dataset.Columns)
	}
	if conf.Optimizer.Budget != "750.5" {
		t.Errorf("expected budget 750.5, got %q", conf.Optimizer.Budget)
	}
	if *conf.Optimizer.Precision != 0 {
		t.Errorf("expected explicit zero precision to survive, got %d", *conf.Optimizer.Precision)
	}
	if conf.Optimizer.MaxCapacityUnits != 5000 {
		t.Errorf("expected max capacity 5000, got %d", conf.Optimizer.MaxCapacityUnits)
	}
	if conf.Optimizer.InvalidItems != constants.InvalidItemsSkip {
		t.Errorf("expected skip mode, got %s", conf.Optimizer.InvalidItems)
	}
	if conf.Optimizer.Algorithm != constants.AlgorithmExhaustive {
		t.Errorf("expected exhaustive algorithm, got %s", conf.Optimizer.Algorithm)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging %+v", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatCSV || conf.Output.CurrencySymbol != "$" {
		t.Errorf("unexpected output %+v", conf.Output)
	}
	if err := conf.Optimizer.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("PICKER_OPTIMIZER_BUDGET", "123.45")
	t.Setenv("PICKER_OUTPUT_FORMAT", "json")

	path := writeFile(t, "config.yaml", "optimizer:\n  budget: 500\n")
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Optimizer.Budget != "123.45" {
		t.Errorf("expected env budget 123.45, got %q", conf.Optimizer.Budget)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("expected env output format json, got %q", conf.Output.Format)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("optimizer:\n  budget: 42\n  algorithm: dp\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Optimizer.Budget != "42" {
		t.Errorf("expected budget 42, got %q", conf.Optimizer.Budget)
	}
	if conf.Optimizer.Algorithm != constants.AlgorithmDynamic {
		t.Errorf("expected dynamic algorithm, got %s", conf.Optimizer.Algorithm)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("optimizer: [unclosed")); err == nil {
		t.Errorf("expected error for invalid YAML")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "PICKER_TEST_ENV_FILE_KEY=loaded\n")
	t.Setenv("PICKER_TEST_ENV_FILE_KEY", "")
	if err := os.Unsetenv("PICKER_TEST_ENV_FILE_KEY"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("PICKER_TEST_ENV_FILE_KEY"); got != "loaded" {
		t.Errorf("expected loaded, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Errorf("expected error for explicit missing env file")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		conf     Configuration
		expected []string
	}{
		{
			name: "No warnings",
			conf: Configuration{
				Dataset:   DatasetConfig{Path: "shares.csv"},
				Optimizer: OptimizerConfig{Budget: "500", Algorithm: "dynamic", InvalidItems: "reject"},
			},
			expected: nil,
		},
		{
			name: "All warnings",
			conf: Configuration{
				Optimizer: OptimizerConfig{Budget: "0", Algorithm: "exhaustive", InvalidItems: "skip"},
			},
			expected: []string{"no dataset path", "exhaustive search", "skipped", "budget is zero"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.conf.ValidateConfiguration()
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expected), len(warnings), warnings)
			}
			for i, want := range tt.expected {
				if !strings.Contains(warnings[i], want) {
					t.Errorf("warning %d: expected %q in %q", i, want, warnings[i])
				}
			}
		})
	}
}

func TestLoggingConfiguration(t *testing.T) {
	config := Configuration{
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "console",
		},
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected logging level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Expected logging format 'console', got '%s'", config.Logging.Format)
	}

	emptyConfig := Configuration{}
	if emptyConfig.Logging.Level != "" {
		t.Errorf("Expected empty logging level, got '%s'", emptyConfig.Logging.Level)
	}
}
