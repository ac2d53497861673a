package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id, companyID string) (Holiday, error)
	ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id, companyID string) error
}
