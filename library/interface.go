package library

import (
	"context"

	"github.com/acrmon/acrmon/domain"
)

// Results provides parsed access to a stream monitor's recognition feed.
// Implementations wrap a raw results client and decode its JSON bodies
// into domain models.
type Results interface {
	Last(ctx context.Context) (domain.Result, error)
	Current(ctx context.Context) (domain.Result, error)
	Recent(ctx context.Context, limit int) ([]domain.Result, error)
	Day(ctx context.Context, date string) ([]domain.Result, error)
	Period(ctx context.Context, begin, end string) ([]domain.Result, error)
}
