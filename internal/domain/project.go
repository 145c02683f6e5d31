package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput marks input that must be rejected before any calculation runs.
var ErrInvalidInput = errors.New("invalid input")

const maxPostalCodeLen = 16

// ProjectInput is the user-provided description of a wall project.
type ProjectInput struct {
	WallAreaSqFt float64
	PostalCode   string

	// Compare enables the EPD comparison; EPDPerCubicMeter is then required.
	Compare          bool
	EPDPerCubicMeter *float64
}

// Validate checks the input at the pipeline boundary.
func (p ProjectInput) Validate() error {
	if math.IsNaN(p.WallAreaSqFt) || math.IsInf(p.WallAreaSqFt, 0) || p.WallAreaSqFt <= 0 {
		return fmt.Errorf("%w: wall area must be a positive number, got %v", ErrInvalidInput, p.WallAreaSqFt)
	}

	code := strings.TrimSpace(p.PostalCode)
	if code == "" {
		return fmt.Errorf("%w: postal code is required", ErrInvalidInput)
	}
	if len(code) > maxPostalCodeLen {
		return fmt.Errorf("%w: postal code must be at most %d characters", ErrInvalidInput, maxPostalCodeLen)
	}

	if p.Compare {
		if p.EPDPerCubicMeter == nil {
			return fmt.Errorf("%w: epd value is required when compare is enabled", ErrInvalidInput)
		}
		v := *p.EPDPerCubicMeter
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: epd value must be a non-negative number, got %v", ErrInvalidInput, v)
		}
	}

	return nil
}

// DeclaredUnits converts wall area in square feet into declared units.
func DeclaredUnits(wallAreaSqFt float64, f EmissionFactors) float64 {
	return wallAreaSqFt * f.SquareMetersPerSquareFoot
}
