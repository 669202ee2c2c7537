package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/cache"
	"github.com/oakhaus/oakhaus-api/internal/models"
)

// BestSellerService fronts the aggregator with a Redis cache. A cached "no
// best seller" result is stored and served like any other value so quiet
// windows do not hammer the database.
type BestSellerService struct {
	aggregator   *SalesAggregator
	cache        *cache.BestSellerCache
	minUnits     int
	trailingDays int
}

func NewBestSellerService(aggregator *SalesAggregator, c *cache.BestSellerCache, minUnits, trailingDays int) *BestSellerService {
	return &BestSellerService{aggregator: aggregator, cache: c, minUnits: minUnits, trailingDays: trailingDays}
}

// WindowFor maps a period name to its window. Unknown names fall back to the
// previous calendar month. Only the calendar-month banner window carries the
// qualification threshold; the trailing dashboard window always surfaces its
// top seller.
func (s *BestSellerService) WindowFor(period string, now time.Time) Window {
	if period == "trailing" {
		return TrailingDays(now, s.trailingDays)
	}
	window := PreviousCalendarMonth(now)
	window.MinUnits = s.minUnits
	return window
}

// Get returns the best seller for the period, serving from cache when
// possible. Cache failures degrade to a direct computation.
func (s *BestSellerService) Get(ctx context.Context, period string) (*models.BestSeller, error) {
	window := s.WindowFor(period, time.Now())

	if s.cache != nil {
		result, found, err := s.cache.Get(ctx, window.Key)
		if err != nil {
			log.Warn().Err(err).Str("window", window.Key).Msg("Best seller cache read failed")
		} else if found {
			return result, nil
		}
	}

	result, err := s.aggregator.BestSeller(window)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, window.Key, result); err != nil {
			log.Warn().Err(err).Str("window", window.Key).Msg("Best seller cache write failed")
		}
	}
	return result, nil
}

// Refresh recomputes and caches both windows. Used by the background warmer
// and after order placement invalidation.
func (s *BestSellerService) Refresh(ctx context.Context) error {
	now := time.Now()
	for _, window := range []Window{s.WindowFor("prev_month", now), s.WindowFor("trailing", now)} {
		result, err := s.aggregator.BestSeller(window)
		if err != nil {
			return err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, window.Key, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// Invalidate drops both cached windows so the next read recomputes.
func (s *BestSellerService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	now := time.Now()
	keys := []string{PreviousCalendarMonth(now).Key, TrailingDays(now, s.trailingDays).Key}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("Best seller cache invalidation failed")
	}
}
