package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"pizzeria-manager/pricing"
	"pizzeria-manager/repository"
	"pizzeria-manager/service"
)

// organizationHeader carries the tenant of every admin request
const organizationHeader = "X-Organization-ID"

// organizationID reads the tenant from the X-Organization-ID header or the organizationId query parameter
func organizationID(r *http.Request) (uuid.UUID, error) {
	value := strings.TrimSpace(r.Header.Get(organizationHeader))
	if value == "" {
		value = strings.TrimSpace(r.URL.Query().Get("organizationId"))
	}
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s header is required", organizationHeader)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid organization id: %s", value)
	}
	return id, nil
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, pricing.ErrReferenceNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidStatusTransition):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidHalf),
		errors.Is(err, pricing.ErrMissingSecondProduct),
		errors.Is(err, pricing.ErrSizeUnavailable),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrInvalidDate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := statusForError(err)
	log.Printf("❌ %s: %v (status=%d)", op, err, status)
	if status == http.StatusInternalServerError {
		http.Error(w, fmt.Sprintf("%s failed: %v", op, err), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, op string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
	}
}
