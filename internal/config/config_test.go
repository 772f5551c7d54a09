package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DESTINATION_CITY", "DESTINATION_LAT", "CACHE_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "ORS_WALKING_ROUTES"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Lille", cfg.Destination)
	assert.Equal(t, 50.62, cfg.DestinationPosition.Lat)
	assert.Equal(t, 7*24*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.ORSWalkingRoutes)
}

func TestLoadOverridesAndErrors(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "2h")
	t.Setenv("ORS_WALKING_ROUTES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.True(t, cfg.ORSWalkingRoutes)

	t.Setenv("RATE_LIMIT_BURST", "lots")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestLoadPricing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meal_bands:
  1: {min: 0, max: 10}
  2: {min: 5, max: 15}
  3: {min: 10, max: 20}
  4: {min: 15, max: 30}
  5: {min: 30, max: 0}
car:
  fuel_price_per_liter: 1.9
  consumption_l_per_100km: 5.5
  toll_per_km: 0.1
  parking_per_day: 20
train_booking_fee: 2.5
`), 0o644))

	p, err := LoadPricing(path)
	require.NoError(t, err)

	band, err := p.PriceBands.For(3)
	require.NoError(t, err)
	assert.Equal(t, 20.0, band.Max)
	assert.Equal(t, 1.9, p.CarCosts.FuelPricePerLiter)
	assert.Equal(t, 2.5, p.TrainBookingFee)
	assert.Len(t, p.TrainFares, 3, "fares keep their defaults")
}

func TestLoadPricingRejectsMissingTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meal_bands:\n  1: {min: 0, max: 10}\n"), 0o644))

	_, err := LoadPricing(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing band")
}

func TestLoadPricingWithoutFile(t *testing.T) {
	p, err := LoadPricing("")
	require.NoError(t, err)
	assert.Equal(t, 15.0, p.CarCosts.ParkingPerDay)
}
