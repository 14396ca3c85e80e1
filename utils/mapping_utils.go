package utils

import (
	"strings"
	"time"

	"pizzeria-manager/models"
)

// ParseWeekday maps a stored day name to a time.Weekday.
// Input is normalized to lowercase before mapping; English and Italian names are accepted.
func ParseWeekday(name string) (time.Weekday, bool) {
	dayLower := strings.ToLower(strings.TrimSpace(name))

	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"domenica":  time.Sunday,
		"lunedi":    time.Monday,
		"lunedì":    time.Monday,
		"martedi":   time.Tuesday,
		"martedì":   time.Tuesday,
		"mercoledi": time.Wednesday,
		"mercoledì": time.Wednesday,
		"giovedi":   time.Thursday,
		"giovedì":   time.Thursday,
		"venerdi":   time.Friday,
		"venerdì":   time.Friday,
		"sabato":    time.Saturday,
	}

	day, exists := dayMap[dayLower]
	return day, exists
}

// MapOrderStatusToLabel maps an order status to the label printed on tickets
func MapOrderStatusToLabel(status models.OrderStatus) string {
	statusMap := map[models.OrderStatus]string{
		models.OrderStatusPending:    "In attesa",
		models.OrderStatusConfirmed:  "Confermato",
		models.OrderStatusPreparing:  "In preparazione",
		models.OrderStatusReady:      "Pronto",
		models.OrderStatusDelivering: "In consegna",
		models.OrderStatusCompleted:  "Completato",
		models.OrderStatusCancelled:  "Annullato",
	}

	if label, exists := statusMap[status]; exists {
		return label
	}

	// If not found, return the raw status
	return string(status)
}

// MapOrderTypeToLabel maps an order type to the label printed on tickets
func MapOrderTypeToLabel(orderType models.OrderType) string {
	switch orderType {
	case models.OrderTypeDelivery:
		return "Consegna"
	case models.OrderTypeTakeaway:
		return "Asporto"
	}
	return strings.ToUpper(string(orderType))
}

// MapHalfToLabel maps an ingredient half to the label printed next to the ingredient
func MapHalfToLabel(half models.Half) string {
	switch half {
	case models.HalfFirst:
		return "1ª metà"
	case models.HalfSecond:
		return "2ª metà"
	}
	return ""
}
