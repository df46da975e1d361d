package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals malformed search input. Requests failing
	// validation are rejected before any scoring happens.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGameNotFound signals a missing game record.
	ErrGameNotFound = errors.New("game not found")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrStoreUnavailable signals a catalog storage failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrBadVector signals an embedding with an unexpected dimension.
	// The offending record is skipped from vector search, never fatal.
	ErrBadVector = errors.New("bad embedding vector")
)

// DimensionError wraps ErrBadVector with the observed and expected dimensions.
type DimensionError struct {
	GameID int64
	Got    int
	Want   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: game %d has dimension %d, want %d",
		ErrBadVector.Error(), e.GameID, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error { return ErrBadVector }

// NewDimensionError creates a dimension mismatch error for a game vector.
func NewDimensionError(gameID int64, got, want int) error {
	return &DimensionError{GameID: gameID, Got: got, Want: want}
}
