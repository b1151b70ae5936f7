package ports

import (
	"context"

	"recall-notes-backend/internal/domain"
)

// RecallLookup queries the external food recall source.
type RecallLookup interface {
	Lookup(ctx context.Context, foodQuery string, limit, skip int) ([]domain.RecallRecord, error)
}
