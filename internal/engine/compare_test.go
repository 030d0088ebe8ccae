package engine

import (
	"testing"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

func completedService(seconds int) models.Service {
	return models.Service{
		ServiceDate:     time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC),
		Status:          models.ServiceCompleted,
		DurationSeconds: seconds,
	}
}

func TestComparePeriodsIdenticalWindows(t *testing.T) {
	usage := []models.UsageRecord{
		{SongID: 1, UsedDate: date(2026, time.May, 3)},
		{SongID: 2, UsedDate: date(2026, time.May, 10)},
	}
	services := []models.Service{completedService(3600)}

	got := ComparePeriods(usage, usage, services, services)
	if got.Changes != (PeriodChanges{}) {
		t.Errorf("identical windows should yield zero changes, got %+v", got.Changes)
	}
}

func TestComparePeriodsZeroPrevious(t *testing.T) {
	usage := []models.UsageRecord{{SongID: 1, UsedDate: date(2026, time.May, 3)}}

	got := ComparePeriods(usage, nil, nil, nil)
	if got.Changes.UsageChange != 100 {
		t.Errorf("usage change from empty previous = %.0f; want +100", got.Changes.UsageChange)
	}
	if got.Changes.DiversityChange != 100 {
		t.Errorf("diversity change from empty previous = %.0f; want +100", got.Changes.DiversityChange)
	}

	// Both windows empty: everything stays at zero, never NaN
	empty := ComparePeriods(nil, nil, nil, nil)
	if empty.Changes != (PeriodChanges{}) {
		t.Errorf("empty-vs-empty should be all zeros, got %+v", empty.Changes)
	}
}

func TestComparePeriodsDirections(t *testing.T) {
	cur := []models.UsageRecord{
		{SongID: 1, UsedDate: date(2026, time.May, 3)},
		{SongID: 1, UsedDate: date(2026, time.May, 10)},
		{SongID: 2, UsedDate: date(2026, time.May, 17)},
		{SongID: 3, UsedDate: date(2026, time.May, 24)},
	}
	prev := []models.UsageRecord{
		{SongID: 1, UsedDate: date(2026, time.April, 5)},
		{SongID: 2, UsedDate: date(2026, time.April, 12)},
	}

	got := ComparePeriods(cur, prev, nil, nil)
	if got.Changes.UsageChange != 100 { // 2 -> 4 records
		t.Errorf("usage change = %.0f; want 100", got.Changes.UsageChange)
	}
	if got.Changes.DiversityChange != 50 { // 2 -> 3 distinct songs
		t.Errorf("diversity change = %.0f; want 50", got.Changes.DiversityChange)
	}
	if len(got.Insights) == 0 {
		t.Error("directional changes should generate insights")
	}
}

func TestComparePeriodsIgnoresDraftServices(t *testing.T) {
	cur := []models.Service{completedService(4000), {Status: models.ServiceDraft, DurationSeconds: 100}}
	prev := []models.Service{completedService(2000)}

	got := ComparePeriods(nil, nil, cur, prev)
	if got.Changes.LengthChange != 100 { // 2000s -> 4000s average
		t.Errorf("length change = %.0f; want 100 (draft excluded)", got.Changes.LengthChange)
	}
}
