package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pharmacore/internal/core/id"
	"pharmacore/internal/infrastructure/cache"
	"pharmacore/pkg/logger"
)

// Cache TTLs. The overview is the expensive query; per-product lookups
// refresh faster.
const (
	overviewTTL   = 10 * time.Minute
	perProductTTL = 5 * time.Minute
)

// Service computes and caches stock analytics.
// Failures degrade to a structured Overview with Success=false rather
// than an error: a broken analytics read must never break the dashboard.
type Service struct {
	products ProductReader
	sales    SalesReader
	store    cache.Store

	windowMonths int
	now          func() time.Time
}

// NewService creates the analytics service.
func NewService(products ProductReader, sales SalesReader, store cache.Store) *Service {
	return &Service{
		products:     products,
		sales:        sales,
		store:        store,
		windowMonths: DefaultWindowMonths,
		now:          time.Now,
	}
}

// Overview returns analytics for a page of products plus the fleet
// summary and critical alerts.
func (s *Service) Overview(ctx context.Context, filter Filter) *Overview {
	filter.Normalize()

	key := fmt.Sprintf("analytics:overview:p%d:l%d:s%s:c%s",
		filter.Page, filter.Limit, filter.Search, filter.Category)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached
	}

	result, err := s.compute(ctx, filter)
	if err != nil {
		logger.Error(ctx, "analytics computation failed", "error", err)
		return &Overview{
			Success:  false,
			Error:    "stock analytics is temporarily unavailable",
			Products: []*StockAnalyticsData{},
			Page:     filter.Page,
			Limit:    filter.Limit,
		}
	}

	s.toCache(ctx, key, result, overviewTTL)
	return result
}

// ForProduct returns the analytics record for one product.
func (s *Service) ForProduct(ctx context.Context, productID id.ID) (*StockAnalyticsData, error) {
	key := "analytics:product:" + productID.String()
	if raw, ok, err := s.store.Get(ctx, key); err == nil && ok {
		var data StockAnalyticsData
		if err := json.Unmarshal(raw, &data); err == nil {
			return &data, nil
		}
	}

	p, err := s.products.GetForAnalysis(ctx, productID)
	if err != nil {
		return nil, err
	}

	from, to := s.window()
	sold, err := s.sales.MonthlySales(ctx, []id.ID{productID}, from, to)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	data := Compute(p, sold[productID], s.windowMonths, s.now())

	if raw, err := json.Marshal(data); err == nil {
		if err := s.store.Set(ctx, key, raw, perProductTTL); err != nil {
			logger.Warn(ctx, "analytics cache write failed", "key", key, "error", err)
		}
	}
	return data, nil
}

func (s *Service) compute(ctx context.Context, filter Filter) (*Overview, error) {
	inputs, total, err := s.products.ListForAnalysis(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	ids := make([]id.ID, len(inputs))
	for i, p := range inputs {
		ids[i] = p.ProductID
	}

	from, to := s.window()
	sold, err := s.sales.MonthlySales(ctx, ids, from, to)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	now := s.now()
	records := make([]*StockAnalyticsData, 0, len(inputs))
	for _, p := range inputs {
		records = append(records, Compute(p, sold[p.ProductID], s.windowMonths, now))
	}

	classified := ClassifyABC(records)
	if filter.Category != "" {
		filtered := classified[:0]
		for _, r := range classified {
			if r.ABCCategory == filter.Category {
				filtered = append(filtered, r)
			}
		}
		classified = filtered
	}

	return &Overview{
		Success:    true,
		Products:   classified,
		Summary:    Summarize(classified),
		Alerts:     CriticalAlerts(classified),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// window returns the half-open sales interval [from, to): the start of
// the month windowMonths-1 months ago through now.
func (s *Service) window() (time.Time, time.Time) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(s.windowMonths - 1), 0)
	return start, now
}

func (s *Service) fromCache(ctx context.Context, key string) (*Overview, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "analytics cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var result Overview
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Warn(ctx, "analytics cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

func (s *Service) toCache(ctx context.Context, key string, result *Overview, ttl time.Duration) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, ttl); err != nil {
		logger.Warn(ctx, "analytics cache write failed", "key", key, "error", err)
	}
}
