package domain

import (
	"fmt"
	"math"
)

// PriceBand is the per-person meal price range considered typical for a
// hotel tier. A Max of zero means the band is open-ended.
type PriceBand struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (b PriceBand) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max <= 0 || price <= b.Max
}

// PriceBands maps hotel tiers 1..5 to validated meal price bands.
type PriceBands struct {
	bands [MaxHotelTier]PriceBand
}

// NewPriceBands builds the tier mapping. Every tier must be present,
// no other tier is accepted, and each band must be well formed.
func NewPriceBands(byTier map[int]PriceBand) (PriceBands, error) {
	var pb PriceBands
	for tier := range byTier {
		if tier < MinHotelTier || tier > MaxHotelTier {
			return PriceBands{}, fmt.Errorf("price bands: tier %d out of range %d..%d", tier, MinHotelTier, MaxHotelTier)
		}
	}

	for tier := MinHotelTier; tier <= MaxHotelTier; tier++ {
		b, ok := byTier[tier]
		if !ok {
			return PriceBands{}, fmt.Errorf("price bands: missing band for tier %d", tier)
		}
		if b.Min < 0 || math.IsNaN(b.Min) || math.IsNaN(b.Max) {
			return PriceBands{}, fmt.Errorf("price bands: tier %d has invalid minimum %.2f", tier, b.Min)
		}
		if b.Max > 0 && b.Max < b.Min {
			return PriceBands{}, fmt.Errorf("price bands: tier %d max %.2f below min %.2f", tier, b.Max, b.Min)
		}
		pb.bands[tier-1] = b
	}

	return pb, nil
}

// DefaultPriceBands are per-person meal prices in EUR.
func DefaultPriceBands() PriceBands {
	pb, err := NewPriceBands(map[int]PriceBand{
		1: {Min: 0, Max: 12},
		2: {Min: 8, Max: 18},
		3: {Min: 12, Max: 25},
		4: {Min: 20, Max: 40},
		5: {Min: 35, Max: 0},
	})
	if err != nil {
		panic(err)
	}
	return pb
}

// For returns the band for a tier.
func (p PriceBands) For(tier int) (PriceBand, error) {
	if tier < MinHotelTier || tier > MaxHotelTier {
		return PriceBand{}, fmt.Errorf("%w: hotel tier must be between %d and %d, got %d", ErrInvalidRequest, MinHotelTier, MaxHotelTier, tier)
	}
	return p.bands[tier-1], nil
}
