package views

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

// Params are the optional view parameters.
//
// Limit applies to upcomingJobs, recentJobs and inventoryUsageReport; zero
// means the configured default. Month ("YYYY-MM") narrows scheduleIndex to a
// calendar month grid. Parameters a view does not use are ignored, so they
// never split its cache entry.
type Params struct {
	Limit int
	Month string
}

const (
	paramLimit = "limit"
	paramMonth = "month"
)

// MaxLimit bounds Limit. Every distinct limit is its own cache entry.
const MaxLimit = 100

// key validates p for view and returns the canonical cache key.
func (s *Service) key(view viewcache.View, p Params) (viewcache.Key, error) {
	if !view.IsValid() {
		return viewcache.Key{}, fmt.Errorf("%w: %q", domain.ErrUnknownView, view)
	}
	if p.Limit < 0 {
		return viewcache.Key{}, domain.NewValidationError(paramLimit, "must be >= 0")
	}
	if p.Limit > MaxLimit {
		return viewcache.Key{}, domain.NewValidationError(paramLimit, fmt.Sprintf("must be <= %d", MaxLimit))
	}

	v := url.Values{}
	switch view {
	case viewcache.ViewUpcomingJobs:
		v.Set(paramLimit, strconv.Itoa(orDefault(p.Limit, s.cfg.UpcomingLimit)))
	case viewcache.ViewRecentJobs:
		v.Set(paramLimit, strconv.Itoa(orDefault(p.Limit, s.cfg.RecentJobsLimit)))
	case viewcache.ViewInventoryUsageReport:
		v.Set(paramLimit, strconv.Itoa(orDefault(p.Limit, s.cfg.TopUsageLimit)))
	case viewcache.ViewScheduleIndex:
		if p.Month != "" {
			if _, _, err := schedule.ParseMonth(p.Month, s.cfg.Location); err != nil {
				return viewcache.Key{}, domain.NewValidationError(paramMonth, "must be YYYY-MM")
			}
			v.Set(paramMonth, p.Month)
		}
	}

	return viewcache.NewKey(view, v.Encode()), nil
}

// decodeParams is the inverse of key for a canonical params string.
func decodeParams(raw string) (Params, error) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return Params{}, fmt.Errorf("decode params %q: %w", raw, err)
	}

	var p Params
	if l := v.Get(paramLimit); l != "" {
		if p.Limit, err = strconv.Atoi(l); err != nil {
			return Params{}, fmt.Errorf("decode limit %q: %w", l, err)
		}
	}
	p.Month = v.Get(paramMonth)
	return p, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
