// Package constants provides shared constants for the loan-planner application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent);
	// a schedule terminates once the running balance drops to this or below
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Schedule generation limits
const (
	// MaxSchedulePeriods caps schedule generation at 50 years of monthly
	// periods so the simulation terminates even on pathological input
	MaxSchedulePeriods = 600

	// MaxTenureYears is the largest tenure the validator accepts as sane
	MaxTenureYears = 40.0

	// MaxRealisticRatePercent is the annual rate above which the validator
	// flags the configuration as unrealistic
	MaxRealisticRatePercent = 50.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)
