// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/loanplanner/loan-planner/internal/config"
)

// FindScenario finds a scenario by name in the configuration.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(scenarios []config.Scenario, name string) *config.Scenario {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i]
		}
	}
	return nil
}
