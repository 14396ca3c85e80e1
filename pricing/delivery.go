package pricing

import (
	"log"
	"math"
	"sort"

	"pizzeria-manager/models"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// SelectTier returns the first tier, in ascending radius order, whose radius covers distanceKm.
// The input slice is not modified.
func SelectTier(tiers []models.RadialTier, distanceKm float64) (models.RadialTier, bool) {
	sorted := make([]models.RadialTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxRadiusKm < sorted[j].MaxRadiusKm
	})

	for _, tier := range sorted {
		if tier.MaxRadiusKm >= distanceKm {
			return tier, true
		}
	}
	return models.RadialTier{}, false
}

// ResolveDeliveryFee applies, in order: free delivery above the threshold, flat fee
// (flat mode or missing coordinates), radial tier lookup, out-of-range fee.
func ResolveDeliveryFee(subtotal float64, customerLat, customerLon *float64, config models.DeliveryFeeConfig) models.DeliveryQuote {
	if config.FreeAboveThreshold > 0 && subtotal >= config.FreeAboveThreshold {
		return models.DeliveryQuote{Fee: 0, Mode: config.CalculationMode, FreeDelivery: true}
	}

	if config.CalculationMode != models.CalculationModeRadial {
		return models.DeliveryQuote{Fee: config.FlatFee, Mode: models.CalculationModeFlat}
	}

	if customerLat == nil || customerLon == nil || config.ShopLatitude == nil || config.ShopLongitude == nil {
		log.Printf("⚠️  ResolveDeliveryFee: radial mode without coordinates (customer=%t, shop=%t), using flat fee %.2f",
			customerLat != nil && customerLon != nil, config.ShopLatitude != nil && config.ShopLongitude != nil, config.FlatFee)
		return models.DeliveryQuote{Fee: config.FlatFee, Mode: models.CalculationModeFlat, Degraded: true}
	}

	distance := HaversineKm(*config.ShopLatitude, *config.ShopLongitude, *customerLat, *customerLon)
	tier, ok := SelectTier(config.RadialTiers, distance)
	if !ok {
		log.Printf("💰 ResolveDeliveryFee: %.2f km beyond all tiers, out-of-range fee %.2f", distance, config.OutOfRangeFee)
		return models.DeliveryQuote{
			Fee:        config.OutOfRangeFee,
			Mode:       models.CalculationModeRadial,
			DistanceKm: &distance,
			OutOfRange: true,
		}
	}

	return models.DeliveryQuote{
		Fee:        tier.Fee,
		Mode:       models.CalculationModeRadial,
		DistanceKm: &distance,
	}
}
