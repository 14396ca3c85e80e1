package models

import "time"

// DayHours is the opening window of one weekday, as "HH:MM" strings
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// BusinessHours maps each weekday to its opening window
type BusinessHours map[time.Weekday]DayHours

// BusinessRules represents the business_rules row of an organization
type BusinessRules struct {
	Hours         BusinessHours
	SlotMinutes   int
	ShopLatitude  *float64
	ShopLongitude *float64
	Timezone      string
}

// SlotStat is the load on a single slot, split by fulfillment type
type SlotStat struct {
	DeliveryOrders int `json:"deliveryOrders"`
	DeliveryItems  int `json:"deliveryItems"`
	TakeawayOrders int `json:"takeawayOrders"`
	TakeawayItems  int `json:"takeawayItems"`
}

// SlotAvailability is a slot with its load, as returned to the cashier panel
type SlotAvailability struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"` // "19:30"
	SlotStat
}

// SlotBoardResponse represents the response for GET /admin/slots
// Example response:
// {
//   "date": "2026-10-19",
//   "slotMinutes": 30,
//   "slots": [{"start": "2026-10-19T18:00:00+02:00", "label": "18:00", "deliveryOrders": 1, ...}]
// }
type SlotBoardResponse struct {
	Date        string             `json:"date"`
	SlotMinutes int                `json:"slotMinutes"`
	Slots       []SlotAvailability `json:"slots"`
}
