package resolution

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// findHoliday returns the first authoritative (non-tentative) holiday whose
// normalized date matches. Malformed entries are skipped, not fatal: a bad
// calendar row must not block resolving the rest of the month.
func findHoliday(date string, holidays []resolution.Holiday) *resolution.Holiday {
	for i := range holidays {
		h := &holidays[i]
		if h.IsTentative || h.Date == "" {
			continue
		}
		normalized, err := civildate.Normalize(h.Date)
		if err != nil {
			continue
		}
		if normalized == date {
			return h
		}
	}
	return nil
}

// holidayRule: an authoritative holiday wins unconditionally.
func holidayRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	h := findHoliday(in.date, in.holidays)
	if h == nil {
		return nil
	}
	info := *h
	return &resolution.ResolvedStatus{
		Date:         in.date,
		Status:       resolution.StatusHoliday,
		IsHoliday:    true,
		IsWorkingDay: false,
		StatusReason: fmt.Sprintf("Holiday: %s", h.Name),
		Holiday:      &info,
	}
}
