// Package scheduling builds the bookable slot grid for a day and annotates it with
// the load of the orders already booked on it.
package scheduling

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"pizzeria-manager/models"
)

const (
	// DefaultSlotMinutes is used when no positive granularity is configured
	DefaultSlotMinutes = 30

	endOfDayMinutes = 23*60 + 59
)

// ParseClock parses "HH:MM" (or "HH:MM:SS") into minutes after midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q: expected HH:MM", value)
	}

	for _, part := range parts {
		if !isDigits(part) {
			return 0, fmt.Errorf("invalid clock %q: expected HH:MM", value)
		}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", value, err)
	}

	if minute < 0 || minute > 59 || hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("clock %q out of range", value)
	}
	return hour*60 + minute, nil
}

// isDigits reports whether part is one or two ASCII digits
func isDigits(part string) bool {
	if len(part) == 0 || len(part) > 2 {
		return false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// OpeningWindow returns the opening and closing minutes for a weekday.
// ok is false when the day is missing or its hours are malformed (closing not after opening).
func OpeningWindow(day time.Weekday, hours models.BusinessHours) (opening, closing int, ok bool) {
	dayHours, exists := hours[day]
	if !exists {
		return 0, 0, false
	}

	opening, err := ParseClock(dayHours.Open)
	if err != nil {
		return 0, 0, false
	}
	closing, err = ParseClock(dayHours.Close)
	if err != nil {
		return 0, 0, false
	}
	if closing <= opening {
		return 0, 0, false
	}
	return opening, closing, true
}

// GenerateSlots returns the ascending start times of the bookable slots on date.
// It never returns an empty grid: malformed hours fall back to the whole day, and an
// empty grid is rebuilt over the whole day at DefaultSlotMinutes. A targetSlot missing
// from the grid (e.g. the booked time of an order being edited) is inserted.
func GenerateSlots(date time.Time, hours models.BusinessHours, slotMinutes int, targetSlot *time.Time) []time.Time {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	opening, closing, ok := OpeningWindow(date.Weekday(), hours)
	if !ok {
		log.Printf("⚠️  GenerateSlots: no valid hours for %s, using full day", date.Weekday())
		opening, closing = 0, endOfDayMinutes
	}

	slots := buildGrid(date, opening, closing, slotMinutes)
	if len(slots) == 0 {
		log.Printf("⚠️  GenerateSlots: empty grid for %s (%d-%d every %d min), using full day every %d min",
			date.Format("2006-01-02"), opening, closing, slotMinutes, DefaultSlotMinutes)
		slots = buildGrid(date, 0, endOfDayMinutes, DefaultSlotMinutes)
	}

	if targetSlot != nil {
		slots = insertSlot(slots, *targetSlot)
	}
	return slots
}

// buildGrid steps from opening (rounded up to a multiple of step) while strictly before closing.
// Wall-clock minutes that do not exist on date (skipped by a DST change) are left out,
// so the grid stays strictly increasing.
func buildGrid(date time.Time, opening, closing, step int) []time.Time {
	start := ((opening + step - 1) / step) * step

	var slots []time.Time
	year, month, day := date.Date()
	for m := start; m < closing; m += step {
		slot := time.Date(year, month, day, m/60, m%60, 0, 0, date.Location())
		if slot.Hour() != m/60 || slot.Minute() != m%60 {
			continue
		}
		if len(slots) > 0 && !slot.After(slots[len(slots)-1]) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

func insertSlot(slots []time.Time, target time.Time) []time.Time {
	for _, slot := range slots {
		if slot.Equal(target) {
			return slots
		}
	}

	slots = append(slots, target)
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})
	return slots
}
