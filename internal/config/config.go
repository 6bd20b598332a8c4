// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"github.com/loanplanner/loan-planner/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-planner.
type Configuration struct {
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Server    ServerConfig  `yaml:"server,omitempty"`
	Store     StoreConfig   `yaml:"store,omitempty"`
	Advice    AdviceConfig  `yaml:"advice,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds HTTP API configuration options
type ServerConfig struct {
	Address        string `yaml:"address,omitempty"`
	MaxRequestSize int64  `yaml:"maxRequestSize,omitempty"`
}

// StoreConfig holds scenario persistence configuration options. An empty
// Redis address selects the in-memory store.
type StoreConfig struct {
	RedisAddress string `yaml:"redisAddress,omitempty"`
}

// AdviceConfig holds the advice generator collaborator options. The API key
// comes from the OPENAI_API_KEY environment variable, never from the file.
type AdviceConfig struct {
	APIURL string `yaml:"apiUrl,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// Scenario holds the loan configuration and prepayment strategy for one
// named scenario. Fields update through plain assignment; there is no
// field-name-keyed access.
type Scenario struct {
	Name               string
	Active             bool
	Principal          float64
	AnnualRatePercent  float64
	TenureYears        float64
	CustomInstallment  float64
	MonthlyExtra       float64
	LumpSumAmount      float64
	LumpSumEveryMonths int
	YearlyPrepayments  []float64
	PrepaymentTiming   string
	PrepaymentMode     string
}

// LoanConfig converts the scenario to the engine's loan configuration.
func (s Scenario) LoanConfig() loans.LoanConfig {
	return loans.LoanConfig{
		Principal:          s.Principal,
		AnnualRatePercent:  s.AnnualRatePercent,
		TenureYears:        s.TenureYears,
		CustomInstallment:  s.CustomInstallment,
		MonthlyExtra:       s.MonthlyExtra,
		LumpSumAmount:      s.LumpSumAmount,
		LumpSumEveryMonths: s.LumpSumEveryMonths,
		YearlyPrepayments:  s.YearlyPrepayments,
		Timing:             loans.PrepaymentTiming(s.PrepaymentTiming),
		Mode:               loans.PrepaymentMode(s.PrepaymentMode),
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxRequestSize <= 0 {
		c.Server.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for every active scenario.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		for _, warning := range validation.ValidateLoan(scenario.LoanConfig()) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s': %s", scenario.Name, warning))
		}
	}
	return warnings
}
