package models

// CalculationMode selects how the delivery fee is computed
type CalculationMode string

const (
	CalculationModeFlat   CalculationMode = "flat"
	CalculationModeRadial CalculationMode = "radial"
)

// RadialTier is a delivery band: any distance up to MaxRadiusKm costs Fee
type RadialTier struct {
	MaxRadiusKm float64 `json:"maxRadiusKm"`
	Fee         float64 `json:"fee"`
}

// DeliveryFeeConfig represents the delivery_configuration row plus the shop location
type DeliveryFeeConfig struct {
	FlatFee            float64         `json:"flatFee"`
	FreeAboveThreshold float64         `json:"freeAboveThreshold"` // 0 disables free delivery
	CalculationMode    CalculationMode `json:"calculationMode"`
	RadialTiers        []RadialTier    `json:"radialTiers"`
	OutOfRangeFee      float64         `json:"outOfRangeFee"`
	ShopLatitude       *float64        `json:"shopLatitude,omitempty"`
	ShopLongitude      *float64        `json:"shopLongitude,omitempty"`
}

// DeliveryQuote is the outcome of resolving a delivery fee
type DeliveryQuote struct {
	Fee          float64         `json:"fee"`
	Mode         CalculationMode `json:"mode"` // mode actually applied
	DistanceKm   *float64        `json:"distanceKm,omitempty"`
	FreeDelivery bool            `json:"freeDelivery"`
	OutOfRange   bool            `json:"outOfRange"`
	// Degraded is set when radial pricing was configured but coordinates were missing
	Degraded bool `json:"degraded"`
}
