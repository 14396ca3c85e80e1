package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrReferenceNotFound matches any *ReferenceNotFoundError via errors.Is
	ErrReferenceNotFound = errors.New("reference not found in catalog")
	// ErrInvalidQuantity is returned for line or ingredient quantities below 1
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidHalf is returned when an ingredient's half does not fit the line
	ErrInvalidHalf = errors.New("invalid ingredient half")
	// ErrMissingSecondProduct is returned for a split line without a second product
	ErrMissingSecondProduct = errors.New("split line requires a second product")
	// ErrSizeUnavailable is returned when the size is disabled for the product
	ErrSizeUnavailable = errors.New("size not available for product")
)

// ReferenceKind names the catalog collection an id was looked up in
type ReferenceKind string

const (
	KindProduct    ReferenceKind = "product"
	KindSize       ReferenceKind = "size"
	KindIngredient ReferenceKind = "ingredient"
)

// ReferenceNotFoundError identifies an id missing from the catalog snapshot
type ReferenceNotFoundError struct {
	Kind ReferenceKind
	ID   uuid.UUID
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found in catalog", e.Kind, e.ID)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}
