package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-manager/models"
)

var testTiers = []models.RadialTier{
	{MaxRadiusKm: 3, Fee: 2.00},
	{MaxRadiusKm: 6, Fee: 4.00},
}

func TestHaversineKm(t *testing.T) {
	// One degree of latitude along a meridian
	assert.InDelta(t, 111.195, HaversineKm(0, 0, 1, 0), 0.01)
	assert.Zero(t, HaversineKm(45.07, 7.68, 45.07, 7.68))
	// Symmetric
	assert.InDelta(t, HaversineKm(45.07, 7.68, 45.46, 9.19), HaversineKm(45.46, 9.19, 45.07, 7.68), 1e-9)
}

func TestSelectTier_InclusiveBoundary(t *testing.T) {
	tests := []struct {
		distance float64
		fee      float64
		found    bool
	}{
		{distance: 0, fee: 2.00, found: true},
		{distance: 3.0, fee: 2.00, found: true},
		{distance: 3.01, fee: 4.00, found: true},
		{distance: 6.0, fee: 4.00, found: true},
		{distance: 6.5, found: false},
	}

	for _, tt := range tests {
		tier, ok := SelectTier(testTiers, tt.distance)
		assert.Equal(t, tt.found, ok, "distance %v", tt.distance)
		if tt.found {
			assert.Equal(t, tt.fee, tier.Fee, "distance %v", tt.distance)
		}
	}
}

func TestSelectTier_UnsortedTiers(t *testing.T) {
	unsorted := []models.RadialTier{
		{MaxRadiusKm: 10, Fee: 7.00},
		{MaxRadiusKm: 3, Fee: 2.00},
		{MaxRadiusKm: 6, Fee: 4.00},
	}

	tier, ok := SelectTier(unsorted, 2.5)
	require.True(t, ok)
	assert.Equal(t, 2.00, tier.Fee)

	tier, ok = SelectTier(unsorted, 7)
	require.True(t, ok)
	assert.Equal(t, 7.00, tier.Fee)

	// input order untouched
	assert.Equal(t, 10.0, unsorted[0].MaxRadiusKm)
}

func radialConfig() models.DeliveryFeeConfig {
	return models.DeliveryFeeConfig{
		FlatFee:            3.50,
		FreeAboveThreshold: 50,
		CalculationMode:    models.CalculationModeRadial,
		RadialTiers:        testTiers,
		OutOfRangeFee:      9.00,
		ShopLatitude:       ptr(45.0),
		ShopLongitude:      ptr(7.0),
	}
}

func TestResolveDeliveryFee_Radial(t *testing.T) {
	config := radialConfig()

	// ~2.2 km north of the shop
	quote := ResolveDeliveryFee(20, ptr(45.02), ptr(7.0), config)
	assert.Equal(t, 2.00, quote.Fee)
	assert.Equal(t, models.CalculationModeRadial, quote.Mode)
	require.NotNil(t, quote.DistanceKm)
	assert.InDelta(t, 2.224, *quote.DistanceKm, 0.01)

	// ~4.4 km
	quote = ResolveDeliveryFee(20, ptr(45.04), ptr(7.0), config)
	assert.Equal(t, 4.00, quote.Fee)
}

func TestResolveDeliveryFee_OutOfRange(t *testing.T) {
	quote := ResolveDeliveryFee(20, ptr(45.2), ptr(7.0), radialConfig())
	assert.Equal(t, 9.00, quote.Fee)
	assert.True(t, quote.OutOfRange)
}

func TestResolveDeliveryFee_FreeDeliveryTakesPrecedence(t *testing.T) {
	config := radialConfig()

	quote := ResolveDeliveryFee(50, ptr(45.04), ptr(7.0), config)
	assert.Zero(t, quote.Fee)
	assert.True(t, quote.FreeDelivery)

	quote = ResolveDeliveryFee(80, ptr(45.2), ptr(7.0), config)
	assert.Zero(t, quote.Fee)
}

func TestResolveDeliveryFee_ZeroThresholdDisablesFreeDelivery(t *testing.T) {
	config := models.DeliveryFeeConfig{FlatFee: 2.5, CalculationMode: models.CalculationModeFlat}

	quote := ResolveDeliveryFee(0, nil, nil, config)
	assert.Equal(t, 2.5, quote.Fee)
	assert.False(t, quote.FreeDelivery)
}

func TestResolveDeliveryFee_FlatModeIgnoresCoordinates(t *testing.T) {
	config := radialConfig()
	config.CalculationMode = models.CalculationModeFlat

	quote := ResolveDeliveryFee(20, ptr(45.2), ptr(7.0), config)
	assert.Equal(t, 3.50, quote.Fee)
	assert.Nil(t, quote.DistanceKm)
	assert.False(t, quote.Degraded)
}

func TestResolveDeliveryFee_MissingCoordinatesDegradesToFlat(t *testing.T) {
	config := radialConfig()

	quote := ResolveDeliveryFee(20, nil, nil, config)
	assert.Equal(t, 3.50, quote.Fee)
	assert.True(t, quote.Degraded)
	assert.Equal(t, models.CalculationModeFlat, quote.Mode)

	config.ShopLatitude = nil
	quote = ResolveDeliveryFee(20, ptr(45.02), ptr(7.0), config)
	assert.Equal(t, 3.50, quote.Fee)
	assert.True(t, quote.Degraded)
}
