package waitlist

import (
	"context"

	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
)

var sortColumns = map[string]string{
	"createdAt": ColEntryCreatedAt,
	"position":  ColEntryPosition,
	"email":     ColEntryEmail,
	"status":    ColEntryStatus,
}

type ListQuery struct {
	Status        model.EntryStatus
	Page          int
	Limit         int
	SortBy        string // createdAt, position, email or status
	SortDirection string // asc or desc
}

type ListResult struct {
	Entries    []*model.WaitlistEntry `json:"entries"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	Registered int64 `json:"registered"`
}

func IsValidSortField(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

func IsValidStatus(status model.EntryStatus) bool {
	switch status {
	case model.EntryStatusPending, model.EntryStatusApproved, model.EntryStatusRejected, model.EntryStatusRegistered:
		return true
	}
	return false
}

func (q ListQuery) sanitize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = params.DefaultPageLimit
	}
	if q.Limit > params.MaxPageLimit {
		q.Limit = params.MaxPageLimit
	}
	if !IsValidSortField(q.SortBy) {
		q.SortBy = "createdAt"
	}
	if q.SortDirection != "asc" {
		q.SortDirection = "desc"
	}
	return q
}

func (s *Service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	query = query.sanitize()
	sort := store.SortField{
		Column: sortColumns[query.SortBy],
		Desc:   query.SortDirection == "desc",
	}
	entries, total, err := s.entries.ListPaginated(ctx, query.Status, sort, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.WaitlistEntry{}
	}
	return &ListResult{
		Entries:    entries,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int((total + int64(query.Limit) - 1) / int64(query.Limit)),
	}, nil
}

// Stats counts entries per status, one query per count.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	counts := []struct {
		status model.EntryStatus
		dst    *int64
	}{
		{"", &stats.Total},
		{model.EntryStatusPending, &stats.Pending},
		{model.EntryStatusApproved, &stats.Approved},
		{model.EntryStatusRejected, &stats.Rejected},
		{model.EntryStatusRegistered, &stats.Registered},
	}
	for _, c := range counts {
		if *c.dst, err = s.entries.Count(ctx, c.status); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
