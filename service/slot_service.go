package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pizzeria-manager/models"
	"pizzeria-manager/repository"
	"pizzeria-manager/scheduling"
)

// ErrInvalidDate is returned for a date that is not YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// SlotService builds the slot board and the live order feed for one day
type SlotService struct {
	settingsRepo       repository.SettingsRepositoryInterface
	orderRepo          repository.OrderRepositoryInterface
	defaultSlotMinutes int
	location           *time.Location
	now                func() time.Time
}

// NewSlotService creates a new SlotService.
// defaultSlotMinutes is used when the business rules carry no granularity.
func NewSlotService(
	settingsRepo repository.SettingsRepositoryInterface,
	orderRepo repository.OrderRepositoryInterface,
	defaultSlotMinutes int,
	location *time.Location,
) *SlotService {
	if location == nil {
		location = time.UTC
	}
	return &SlotService{
		settingsRepo:       settingsRepo,
		orderRepo:          orderRepo,
		defaultSlotMinutes: defaultSlotMinutes,
		location:           location,
		now:                time.Now,
	}
}

// dayBounds parses date in location and returns [midnight, next midnight).
// An empty date means today.
func (s *SlotService) dayBounds(date string, location *time.Location) (time.Time, time.Time, error) {
	var day time.Time
	if date == "" {
		now := s.now().In(location)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
	} else {
		parsed, err := time.ParseInLocation(dateLayout, date, location)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		day = parsed
	}
	return day, day.AddDate(0, 0, 1), nil
}

// GetSlotBoard returns the slots of a day with the load already booked on each.
// target, when it falls on that day, is always present in the board.
func (s *SlotService) GetSlotBoard(ctx context.Context, organizationID uuid.UUID, date string, target *time.Time) (*models.SlotBoardResponse, error) {
	rules, err := s.settingsRepo.GetBusinessRules(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business rules: %w", err)
	}

	location := resolveLocation(rules.Timezone, s.location)
	from, to, err := s.dayBounds(date, location)
	if err != nil {
		return nil, err
	}

	slotMinutes := rules.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = s.defaultSlotMinutes
	}
	if slotMinutes <= 0 {
		slotMinutes = scheduling.DefaultSlotMinutes
	}

	var targetSlot *time.Time
	if target != nil {
		local := target.In(location)
		if !local.Before(from) && local.Before(to) {
			targetSlot = &local
		} else {
			log.Printf("⚠️  GetSlotBoard: target %s is not on %s, ignored", target.Format(time.RFC3339), from.Format(dateLayout))
		}
	}

	slots := scheduling.GenerateSlots(from, rules.Hours, slotMinutes, targetSlot)

	orders, err := s.orderRepo.ListActive(ctx, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load active orders: %w", err)
	}

	stats := scheduling.Aggregate(slots, orders)
	log.Printf("🕒 GetSlotBoard: organization=%s date=%s slots=%d orders=%d", organizationID, from.Format(dateLayout), len(slots), len(orders))

	return &models.SlotBoardResponse{
		Date:        from.Format(dateLayout),
		SlotMinutes: slotMinutes,
		Slots:       scheduling.Annotate(slots, stats),
	}, nil
}

// ListActiveOrders returns the non-terminal orders of a day
func (s *SlotService) ListActiveOrders(ctx context.Context, organizationID uuid.UUID, date string) (*models.ActiveOrderListResponse, error) {
	rules, err := s.settingsRepo.GetBusinessRules(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business rules: %w", err)
	}

	from, to, err := s.dayBounds(date, resolveLocation(rules.Timezone, s.location))
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListActive(ctx, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load active orders: %w", err)
	}

	return &models.ActiveOrderListResponse{Orders: orders}, nil
}
