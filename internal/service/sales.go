package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/vendas-realtime/internal/cache"
	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/domain/models"
	"github.com/guttosm/vendas-realtime/internal/logger"
	"github.com/guttosm/vendas-realtime/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	// Endpoint identifies the sales query in cache keys.
	Endpoint = "vendas-realtime"

	// DefaultCacheTTL is how long a database result is served from cache.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultQueryTimeout bounds a shared database query.
	DefaultQueryTimeout = 10 * time.Second
)

// SalesService is the query-and-cache orchestrator behind the sales endpoints.
type SalesService interface {
	// ResolveDateRange validates the request's date parameters.
	ResolveDateRange(p DateParams) (models.DateRange, error)
	// GetSales returns the per-store aggregate for r, preferring the cache.
	GetSales(ctx context.Context, r models.DateRange) (*models.QueryResult, error)
	// InvalidateCache drops every cached result and returns how many were removed.
	InvalidateCache(ctx context.Context) (int64, error)
	// CacheStatus reports whether the cache store is reachable.
	CacheStatus(ctx context.Context) error
}

// Options tune a SalesService. Zero values fall back to defaults.
type Options struct {
	TTL          time.Duration
	QueryTimeout time.Duration
	Location     *time.Location
	Clock        clockwork.Clock
}

type salesService struct {
	repo     storage.SalesRepository
	cache    cache.Gateway
	resolver *DateRangeResolver
	clock    clockwork.Clock
	ttl      time.Duration
	qTimeout time.Duration
	flight   singleflight.Group
	log      zerolog.Logger
}

// NewSalesService wires the orchestrator to its two gateways.
//
// Parameters:
//   - repo (storage.SalesRepository): source of the per-store aggregates.
//   - gw (cache.Gateway): result cache; failures degrade to repo reads.
//   - opts (Options): TTL, query timeout, timezone and clock. Zero values use
//     DefaultCacheTTL, DefaultQueryTimeout, UTC and the real clock.
//
// Returns:
//   - SalesService: safe for concurrent use by request handlers.
func NewSalesService(repo storage.SalesRepository, gw cache.Gateway, opts Options) SalesService {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &salesService{
		repo:     repo,
		cache:    gw,
		resolver: NewDateRangeResolver(opts.Location, opts.Clock),
		clock:    opts.Clock,
		ttl:      opts.TTL,
		qTimeout: opts.QueryTimeout,
		log:      logger.Component("service"),
	}
}

func (s *salesService) ResolveDateRange(p DateParams) (models.DateRange, error) {
	return s.resolver.Resolve(p)
}

// GetSales answers from the cache when a well-formed entry exists and
// otherwise reads the database and repopulates the cache.
//
// Concurrent misses for the same key share one database query. The shared
// query is detached from any single caller: it runs under its own timeout,
// and each caller stops waiting when its own ctx ends. Database failures are
// returned as *errs.UpstreamError and never cached.
func (s *salesService) GetSales(ctx context.Context, r models.DateRange) (*models.QueryResult, error) {
	key := cache.Key(Endpoint, r)

	if res, ok := s.fromCache(ctx, key, r); ok {
		return res, nil
	}

	ch := s.flight.DoChan(key, func() (interface{}, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.qTimeout)
		defer cancel()
		return s.fromDatabase(qctx, key, r)
	})

	select {
	case <-ctx.Done():
		return nil, errs.NewUpstream("query sales", ctx.Err())
	case out := <-ch:
		if out.Err != nil {
			return nil, out.Err
		}
		// Callers sharing a flight each get their own result value.
		res := *out.Val.(*models.QueryResult)
		return &res, nil
	}
}

func (s *salesService) fromCache(ctx context.Context, key string, r models.DateRange) (*models.QueryResult, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to database")
		}
		return nil, false
	}

	entry, err := decodeEntry(data)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("malformed cache entry, falling back to database")
		return nil, false
	}

	rows := make([]models.StoreSales, 0, len(entry.Rows))
	for _, row := range entry.Rows {
		rows = append(rows, models.StoreSales{
			StoreCode:     row.Code,
			StoreName:     row.Name,
			TotalQuantity: row.Quantity,
			TotalValue:    row.Value,
		})
	}

	return models.NewQueryResult(entry.QueryTimestamp.In(s.resolver.Location()), r, models.SourceCache, rows), true
}

func (s *salesService) fromDatabase(ctx context.Context, key string, r models.DateRange) (*models.QueryResult, error) {
	rows, err := s.repo.SalesByStore(ctx, r)
	if err != nil {
		if !errs.IsUpstream(err) {
			err = errs.NewUpstream("query sales", err)
		}
		s.log.Error().Err(err).
			Str("periodo_inicio", r.Start.Format(models.PeriodLayout)).
			Str("periodo_fim", r.End.Format(models.PeriodLayout)).
			Msg("sales query failed")
		return nil, err
	}

	res := models.NewQueryResult(s.clock.Now().In(s.resolver.Location()), r, models.SourceDatabase, rows)

	payload, err := encodeEntry(res)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("could not encode cache entry")
		return res, nil
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return res, nil
}

// InvalidateCache removes every key of the service namespace. Running it on
// an empty cache succeeds with zero.
//
// Returns:
//   - int64: number of keys removed.
//   - error: *errs.CacheUnavailableError when Redis cannot be reached.
func (s *salesService) InvalidateCache(ctx context.Context) (int64, error) {
	n, err := s.cache.DeleteNamespace(ctx)
	if err != nil {
		if !errs.IsCacheUnavailable(err) {
			err = errs.NewCacheUnavailable("invalidate", err)
		}
		s.log.Error().Err(err).Msg("cache invalidation failed")
		return 0, err
	}

	s.log.Info().Int64("removed", n).Msg("cache invalidated")
	return n, nil
}

func (s *salesService) CacheStatus(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

// cacheEntry is the JSON stored in Redis for one range.
type cacheEntry struct {
	QueryTimestamp time.Time  `json:"query_timestamp"`
	PeriodStart    string     `json:"period_start"`
	PeriodEnd      string     `json:"period_end"`
	Rows           []cacheRow `json:"rows"`
}

type cacheRow struct {
	Code     string          `json:"codigo"`
	Name     string          `json:"loja"`
	Quantity float64         `json:"total_quantidade"`
	Value    decimal.Decimal `json:"venda_total"`
}

func encodeEntry(res *models.QueryResult) ([]byte, error) {
	entry := cacheEntry{
		QueryTimestamp: res.QueryTimestamp,
		PeriodStart:    res.PeriodStart.Format(models.PeriodLayout),
		PeriodEnd:      res.PeriodEnd.Format(models.PeriodLayout),
		Rows:           make([]cacheRow, 0, len(res.Rows)),
	}
	for _, row := range res.Rows {
		entry.Rows = append(entry.Rows, cacheRow{
			Code:     row.StoreCode,
			Name:     row.StoreName,
			Quantity: row.TotalQuantity,
			Value:    row.TotalValue,
		})
	}
	return json.Marshal(entry)
}

// decodeEntry rejects payloads that are not JSON or lack the rows array or
// the query timestamp.
func decodeEntry(data []byte) (*cacheEntry, error) {
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	if entry.Rows == nil || entry.QueryTimestamp.IsZero() {
		return nil, errors.New("decode cache entry: missing rows or query_timestamp")
	}
	return &entry, nil
}
