package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"pizzeria-manager/db"
	"pizzeria-manager/models"
	"pizzeria-manager/utils"
)

// SettingsRepository handles database operations for delivery configuration and business rules
type SettingsRepository struct{}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Ensure SettingsRepository implements SettingsRepositoryInterface
var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)

// GetDeliveryConfig retrieves the delivery configuration joined with the shop location.
// An organization without a configuration row gets a flat, zero-fee configuration.
func (r *SettingsRepository) GetDeliveryConfig(ctx context.Context, organizationID uuid.UUID) (*models.DeliveryFeeConfig, error) {
	query := `
		SELECT dc.flat_fee::float8, dc.free_above_threshold::float8, dc.calculation_mode,
		       dc.radial_tiers, dc.out_of_range_fee::float8,
		       br.shop_latitude, br.shop_longitude
		FROM delivery_configuration dc
		LEFT JOIN business_rules br ON br.organization_id = dc.organization_id
		WHERE dc.organization_id = $1
	`

	var config models.DeliveryFeeConfig
	var mode string
	var tiersJSON []byte
	var lat, lon sql.NullFloat64

	err := db.DB.QueryRowContext(ctx, query, organizationID).Scan(
		&config.FlatFee,
		&config.FreeAboveThreshold,
		&mode,
		&tiersJSON,
		&config.OutOfRangeFee,
		&lat,
		&lon,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("⚠️  GetDeliveryConfig: No delivery configuration for organization=%s, using flat zero fee", organizationID)
			return &models.DeliveryFeeConfig{CalculationMode: models.CalculationModeFlat}, nil
		}
		log.Printf("❌ GetDeliveryConfig: Error fetching delivery configuration: %v", err)
		return nil, fmt.Errorf("failed to fetch delivery configuration: %w", err)
	}

	config.CalculationMode = parseCalculationMode(mode)
	if config.RadialTiers, err = parseRadialTiers(tiersJSON); err != nil {
		log.Printf("⚠️  GetDeliveryConfig: %v", err)
	}
	if lat.Valid && lon.Valid {
		config.ShopLatitude = &lat.Float64
		config.ShopLongitude = &lon.Float64
	}

	return &config, nil
}

// GetBusinessRules retrieves opening hours, slot granularity, shop location and time zone.
// Malformed or missing hours are returned empty; the slot scheduler handles the fallback.
func (r *SettingsRepository) GetBusinessRules(ctx context.Context, organizationID uuid.UUID) (*models.BusinessRules, error) {
	query := `
		SELECT opening_hours, slot_minutes, shop_latitude, shop_longitude, timezone
		FROM business_rules
		WHERE organization_id = $1
	`

	var rules models.BusinessRules
	var hoursJSON []byte
	var lat, lon sql.NullFloat64

	err := db.DB.QueryRowContext(ctx, query, organizationID).Scan(
		&hoursJSON,
		&rules.SlotMinutes,
		&lat,
		&lon,
		&rules.Timezone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("⚠️  GetBusinessRules: No business rules for organization=%s", organizationID)
			return &models.BusinessRules{Hours: models.BusinessHours{}}, nil
		}
		log.Printf("❌ GetBusinessRules: Error fetching business rules: %v", err)
		return nil, fmt.Errorf("failed to fetch business rules: %w", err)
	}

	rules.Hours = parseOpeningHours(hoursJSON)
	if lat.Valid && lon.Valid {
		rules.ShopLatitude = &lat.Float64
		rules.ShopLongitude = &lon.Float64
	}

	return &rules, nil
}

func parseCalculationMode(mode string) models.CalculationMode {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "radial", "radius", "distance":
		return models.CalculationModeRadial
	}
	return models.CalculationModeFlat
}

func parseRadialTiers(data []byte) ([]models.RadialTier, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var tiers []models.RadialTier
	if err := json.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("invalid radial tiers: %w", err)
	}
	return tiers, nil
}

// parseOpeningHours decodes {"monday": {"open": "18:00", "close": "22:00"}, ...}.
// Unknown day names are skipped.
func parseOpeningHours(data []byte) models.BusinessHours {
	hours := models.BusinessHours{}
	if len(data) == 0 {
		return hours
	}

	var raw map[string]models.DayHours
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("⚠️  parseOpeningHours: invalid opening hours: %v", err)
		return hours
	}

	for name, dayHours := range raw {
		day, ok := utils.ParseWeekday(name)
		if !ok {
			log.Printf("⚠️  parseOpeningHours: unknown day %q skipped", name)
			continue
		}
		hours[day] = dayHours
	}
	return hours
}
