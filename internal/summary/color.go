// Package summary renders collected run results as human-friendly
// console tables.
package summary

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// ColorHelper provides utilities for coloring console output
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
// Colors are enabled only when outputting to a terminal
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

// Success returns green colored text
func (c *ColorHelper) Success(text string) string {
	if !c.enabled {
		return text
	}
	return color.GreenString(text)
}

// Failure returns red colored text
func (c *ColorHelper) Failure(text string) string {
	if !c.enabled {
		return text
	}
	return color.RedString(text)
}

// Warning returns yellow colored text
func (c *ColorHelper) Warning(text string) string {
	if !c.enabled {
		return text
	}
	return color.YellowString(text)
}

// Info returns cyan colored text
func (c *ColorHelper) Info(text string) string {
	if !c.enabled {
		return text
	}
	return color.CyanString(text)
}

// Muted returns gray colored text
func (c *ColorHelper) Muted(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgHiBlack).Sprint(text)
}

// Bold returns bold text
func (c *ColorHelper) Bold(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.Bold).Sprint(text)
}

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgCyan, color.Bold).Sprint(text)
}

// FormatOutcome returns appropriately colored outcome text
func (c *ColorHelper) FormatOutcome(o result.Outcome) string {
	switch o {
	case result.OutcomeSuccess:
		return c.Success("✓ PASS")
	case result.OutcomeFailure:
		return c.Failure("✗ FAIL")
	case result.OutcomeError:
		return c.Failure("✗ ERROR")
	case result.OutcomeSkipped:
		return c.Warning("- SKIP")
	default:
		return string(o)
	}
}

// FormatPercentage returns colored percentage based on value
func (c *ColorHelper) FormatPercentage(value float64) string {
	text := fmt.Sprintf("%.1f%%", value)
	if value == 100.0 {
		return c.Success(text)
	}
	if value >= 90.0 {
		return c.Warning(text)
	}
	return c.Failure(text)
}
