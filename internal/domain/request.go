package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinDurationDays = 1
	MaxDurationDays = 10
	MinTravelers    = 1
	MaxTravelers    = 20
	MinHotelTier    = 1
	MaxHotelTier    = 5
)

// TransportMode is the way the group reaches the destination.
type TransportMode string

const (
	ModeTrain TransportMode = "train"
	ModeCar   TransportMode = "car"
)

// ParseTransportMode accepts "train" or "car", case-insensitively.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTrain:
		return ModeTrain, nil
	case ModeCar:
		return ModeCar, nil
	}
	return "", fmt.Errorf("parse transport mode %q: %w", s, ErrInvalidRequest)
}

func (m TransportMode) Valid() bool { return m == ModeTrain || m == ModeCar }

// TripRequest holds the parameters of one planning invocation.
// It is treated as immutable once built; PlanTrip validates it on entry.
type TripRequest struct {
	OriginCity    string
	StartDate     time.Time
	DurationDays  int
	Travelers     int
	PreferredMode TransportMode
	HotelTier     int
	// nil means unconstrained.
	BudgetCap *float64
}

// Validate checks every field against its allowed range.
func (r TripRequest) Validate() error {
	if r.DurationDays < MinDurationDays || r.DurationDays > MaxDurationDays {
		return fmt.Errorf(
			"%w: duration must be between %d and %d days, got %d",
			ErrInvalidRequest, MinDurationDays, MaxDurationDays, r.DurationDays,
		)
	}
	if r.Travelers < MinTravelers || r.Travelers > MaxTravelers {
		return fmt.Errorf(
			"%w: travelers must be between %d and %d, got %d",
			ErrInvalidRequest, MinTravelers, MaxTravelers, r.Travelers,
		)
	}
	if r.HotelTier < MinHotelTier || r.HotelTier > MaxHotelTier {
		return fmt.Errorf(
			"%w: hotel tier must be between %d and %d, got %d",
			ErrInvalidRequest, MinHotelTier, MaxHotelTier, r.HotelTier,
		)
	}
	if !r.PreferredMode.Valid() {
		return fmt.Errorf("%w: unknown transport mode %q", ErrInvalidRequest, r.PreferredMode)
	}
	if r.BudgetCap != nil && *r.BudgetCap < 0 {
		return fmt.Errorf("%w: budget cap must not be negative, got %.2f", ErrInvalidRequest, *r.BudgetCap)
	}
	return nil
}

// Nights spent at the hotel. One night is billed per trip day.
func (r TripRequest) Nights() int { return r.DurationDays }

// EndDate is the date of the last trip day.
func (r TripRequest) EndDate() time.Time {
	if r.DurationDays < 1 {
		return r.StartDate
	}
	return r.StartDate.AddDate(0, 0, r.DurationDays-1)
}
