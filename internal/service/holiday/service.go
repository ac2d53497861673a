package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
	"github.com/go-chi/jwtauth/v5"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{holidayRepo: holidayRepo}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// Create implements holiday.HolidayService.
func (h *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := civildate.Parse(req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := h.holidayRepo.Create(ctx, holiday.Holiday{
		CompanyID:   companyID,
		Date:        date,
		Name:        req.Name,
		IsTentative: req.IsTentative,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return mapHolidayToResponse(created), nil
}

// List implements holiday.HolidayService.
func (h *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, civildate.Location())
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, civildate.Location())

	holidays, err := h.holidayRepo.ListByRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, len(holidays))
	for i, entity := range holidays {
		responses[i] = mapHolidayToResponse(entity)
	}
	return responses, nil
}

// Update implements holiday.HolidayService.
func (h *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	existing, err := h.holidayRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if req.Date != nil {
		date, err := civildate.Parse(*req.Date)
		if err != nil {
			return holiday.HolidayResponse{}, err
		}
		existing.Date = date
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.IsTentative != nil {
		existing.IsTentative = *req.IsTentative
	}

	if err := h.holidayRepo.Update(ctx, existing); err != nil {
		return holiday.HolidayResponse{}, err
	}
	return mapHolidayToResponse(existing), nil
}

// Delete implements holiday.HolidayService.
func (h *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return h.holidayRepo.Delete(ctx, id, companyID)
}

func mapHolidayToResponse(entity holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:          entity.ID,
		Date:        civildate.FromTime(entity.Date),
		Name:        entity.Name,
		IsTentative: entity.IsTentative,
	}
}
