package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/report"
	"github.com/municipal-services/complaint-service/internal/repository"
)

// Report formats accepted by Generate.
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

const statsCacheKey = "complaints:statistics"

// ErrCacheMiss is returned by a StatsCache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// StatsCache stores serialized statistics for a bounded time. A nil cache
// disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache wraps a redis client as a StatsCache. A nil client
// yields a nil cache.
func NewRedisStatsCache(client *redis.Client) StatsCache {
	if client == nil {
		return nil
	}
	return &redisStatsCache{client: client}
}

func (c *redisStatsCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (c *redisStatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// ReportArtifact is the rendered output of a report request, together with
// the response metadata the transport layer must emit with it.
type ReportArtifact struct {
	ContentType string `json:"content_type"`
	Disposition string `json:"disposition"`
	Buffer      []byte `json:"-"`
	FilePath    string `json:"file_path,omitempty"`
}

// ReportService pulls aggregate rows, delegates rendering, and shapes the
// response envelope.
type ReportService struct {
	complaints repository.ComplaintRepository
	renderer   report.Renderer
	cache      StatsCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewReportService constructs the service. cache may be nil; statistics then
// always hit the store.
func NewReportService(complaints repository.ComplaintRepository, renderer report.Renderer, cache StatsCache, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		complaints: complaints,
		renderer:   renderer,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Generate renders the aggregate complaint report in the requested format.
// Unknown formats are rejected before the store is touched; an empty row set
// yields an explicit no-data outcome, never an empty artifact.
func (s *ReportService) Generate(ctx context.Context, format string) (Outcome, error) {
	switch format {
	case FormatPDF:
		return s.generatePDF(ctx)
	case FormatCSV:
		return s.generateCSV(ctx)
	default:
		return reject(CodeUnsupportedFormat, "unsupported report format"), nil
	}
}

func (s *ReportService) generatePDF(ctx context.Context) (Outcome, error) {
	rows, err := s.complaints.ReportRowsForPDF(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if len(rows) == 0 {
		return reject(CodeNoData, "no report data available"), nil
	}

	buf, err := s.renderer.RenderPDF(rows)
	if err != nil {
		return Outcome{}, err
	}
	return accept("report generated", ReportArtifact{
		ContentType: "application/pdf",
		Disposition: `inline; filename="complaints-report.pdf"`,
		Buffer:      buf,
	}), nil
}

func (s *ReportService) generateCSV(ctx context.Context) (Outcome, error) {
	rows, err := s.complaints.ReportRowsForCSV(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if len(rows) == 0 {
		return reject(CodeNoData, "no report data available"), nil
	}

	path, err := s.renderer.RenderCSV(rows)
	if err != nil {
		return Outcome{}, err
	}
	return accept("report generated", ReportArtifact{
		ContentType: "text/csv",
		Disposition: `attachment; filename="complaints-report.csv"`,
		FilePath:    path,
	}), nil
}

// Statistics returns the pre-computed aggregate record. Results are cached
// briefly; any store failure surfaces unchanged since the read is idempotent
// to retry. Cache trouble only ever costs a store round trip.
func (s *ReportService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		cached, err := s.cache.Get(ctx, statsCacheKey)
		if err == nil {
			var stats domain.Statistics
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		}
	}

	stats, err := s.complaints.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, encoded, s.cacheTTL); err != nil {
				s.logger.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}
