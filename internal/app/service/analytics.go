package service

import (
	"context"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// recentClickLimit caps the raw click sample returned with a report.
const recentClickLimit = 50

// histogramDays is the trailing UTC window of the daily histogram.
const histogramDays = 7

// Report is the per-link analytics breakdown. ClicksByDay is sparse: days
// without clicks are omitted and the caller fills the gaps.
type Report struct {
	TotalClicks     int64                  `json:"total_clicks"`
	Clicks          []storage.ClickRecord  `json:"clicks"`
	ClicksByBrowser []storage.BrowserCount `json:"clicks_by_browser"`
	ClicksByDay     []storage.DayCount     `json:"clicks_by_day"`
}

// AnalyticsService derives reports from the recorded click events.
type AnalyticsService struct {
	store storage.Store
}

func NewAnalytics(store storage.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Report builds the analytics for one link. The lookup is owner-scoped:
// someone else's link id behaves exactly like a missing one.
func (s *AnalyticsService) Report(ctx context.Context, linkID, requesterID string) (*storage.LinkRecord, *Report, error) {
	link, err := s.store.FindLinkByID(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}
	if link.OwnerID != requesterID {
		return nil, nil, storage.ErrNotFound
	}

	total, err := s.store.CountClicks(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}

	recent, err := s.store.RecentClicks(ctx, linkID, recentClickLimit)
	if err != nil {
		return nil, nil, err
	}

	byBrowser, err := s.store.ClicksByBrowser(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}

	byDay, err := s.store.ClicksByDay(ctx, linkID, histogramDays)
	if err != nil {
		return nil, nil, err
	}

	return link, &Report{
		TotalClicks:     total,
		Clicks:          recent,
		ClicksByBrowser: byBrowser,
		ClicksByDay:     byDay,
	}, nil
}
