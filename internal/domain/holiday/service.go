package holiday

import "context"

// HolidayService manages the company holiday calendar consumed by the
// attendance status resolver.
type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}
