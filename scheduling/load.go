package scheduling

import (
	"time"

	"pizzeria-manager/models"
)

// SlotKey identifies a slot by its wall-clock minute
type SlotKey struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// KeyOf returns the SlotKey of t in t's own location
func KeyOf(t time.Time) SlotKey {
	year, month, day := t.Date()
	return SlotKey{Year: year, Month: month, Day: day, Hour: t.Hour(), Minute: t.Minute()}
}

// Aggregate counts the active orders booked on each slot, split into delivery and
// takeaway (every non-delivery type). Booked times are compared in the slots' location.
// Orders without a slot, inactive orders and orders on no slot are ignored.
func Aggregate(slots []time.Time, orders []models.ActiveOrder) map[SlotKey]models.SlotStat {
	stats := make(map[SlotKey]models.SlotStat, len(slots))
	if len(slots) == 0 {
		return stats
	}

	for _, slot := range slots {
		stats[KeyOf(slot)] = models.SlotStat{}
	}

	loc := slots[0].Location()
	for _, order := range orders {
		if order.SlotTime == nil || !order.Status.IsActive() {
			continue
		}

		key := KeyOf(order.SlotTime.In(loc))
		stat, ok := stats[key]
		if !ok {
			continue
		}

		if order.OrderType == models.OrderTypeDelivery {
			stat.DeliveryOrders++
			stat.DeliveryItems += order.ItemCount
		} else {
			stat.TakeawayOrders++
			stat.TakeawayItems += order.ItemCount
		}
		stats[key] = stat
	}

	return stats
}

// Annotate pairs each slot, in order, with its aggregated load
func Annotate(slots []time.Time, stats map[SlotKey]models.SlotStat) []models.SlotAvailability {
	board := make([]models.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		board = append(board, models.SlotAvailability{
			Start:    slot,
			Label:    slot.Format("15:04"),
			SlotStat: stats[KeyOf(slot)],
		})
	}
	return board
}
