// Package constants provides shared constants for the portfolio-picker application.
package constants

// Money constants
const (
	// DefaultPrecision is the number of decimal digits of the smallest currency
	// denomination used for costs and budgets (2, i.e. cents).
	DefaultPrecision int32 = 2

	// DefaultValuePrecision is the largest number of fractional digits a payout
	// may carry. Payouts are compared exactly at the scale the inputs need.
	DefaultValuePrecision int32 = 12

	// MaxPrecision bounds the cost precision so that unit conversion stays
	// within int64.
	MaxPrecision int32 = 9

	// MaxValuePrecision bounds the payout digit limit.
	MaxValuePrecision int32 = 18

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100

	// DefaultBudget is the investment budget used when none is configured.
	DefaultBudget = "500"

	// DefaultCurrencySymbol prefixes amounts in the pretty report.
	DefaultCurrencySymbol = "€"
)

// Optimizer ceilings
const (
	// DefaultMaxCapacityUnits caps the DP table width (10,000,000 cents = 100,000.00).
	DefaultMaxCapacityUnits int64 = 10_000_000

	// DefaultMaxTableCells caps the provenance table (one bit per cell, 256 MiB).
	DefaultMaxTableCells int64 = 1 << 31

	// MaxExhaustiveItems is the largest item count the exhaustive search accepts.
	MaxExhaustiveItems = 24
)

// Algorithm names
const (
	// AlgorithmDynamic selects the dynamic-programming solver.
	AlgorithmDynamic = "dynamic"

	// AlgorithmExhaustive selects the brute-force subset enumeration.
	AlgorithmExhaustive = "exhaustive"
)

// Invalid item handling modes
const (
	// InvalidItemsReject fails the run on the first invalid item.
	InvalidItemsReject = "reject"

	// InvalidItemsSkip leaves invalid items out of the run.
	InvalidItemsSkip = "skip"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment overrides, e.g. PICKER_OPTIMIZER_BUDGET
	EnvPrefix = "PICKER"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for datasets (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)
