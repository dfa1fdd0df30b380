package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/municipal-services/complaint-service/internal/domain"
)

type fakeRenderer struct {
	pdf      []byte
	csvPath  string
	pdfErr   error
	csvErr   error
	pdfCalls int
	csvCalls int
}

func (f *fakeRenderer) RenderPDF(rows []domain.ReportRow) ([]byte, error) {
	f.pdfCalls++
	return f.pdf, f.pdfErr
}

func (f *fakeRenderer) RenderCSV(rows []domain.ReportRow) (string, error) {
	f.csvCalls++
	return f.csvPath, f.csvErr
}

func sampleRows() []domain.ReportRow {
	return []domain.ReportRow{
		{
			ComplaintID:   "c-1",
			Subject:       "noise at night",
			Status:        domain.StatusPending,
			OfficeType:    "municipal",
			CustomerName:  "Ana",
			CustomerEmail: "ana@example.com",
			CreatedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	repo := newFakeComplaintRepo()
	renderer := &fakeRenderer{}
	svc := NewReportService(repo, renderer, nil, 0, zap.NewNop())

	outcome, err := svc.Generate(context.Background(), "xml")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if outcome.Success || outcome.Code != CodeUnsupportedFormat {
		t.Fatalf("outcome=%+v, want UNSUPPORTED_FORMAT", outcome)
	}
	if repo.rowsCalls != 0 {
		t.Errorf("store queried %d times for an unsupported format, want 0", repo.rowsCalls)
	}
	if renderer.pdfCalls+renderer.csvCalls != 0 {
		t.Errorf("renderer invoked for an unsupported format")
	}
}

func TestGenerateNoData(t *testing.T) {
	for _, format := range []string{FormatPDF, FormatCSV} {
		t.Run(format, func(t *testing.T) {
			repo := newFakeComplaintRepo()
			renderer := &fakeRenderer{}
			svc := NewReportService(repo, renderer, nil, 0, zap.NewNop())

			outcome, err := svc.Generate(context.Background(), format)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if outcome.Success || outcome.Code != CodeNoData {
				t.Fatalf("outcome=%+v, want NO_DATA", outcome)
			}
			if renderer.pdfCalls+renderer.csvCalls != 0 {
				t.Errorf("renderer invoked with no rows")
			}
		})
	}
}

func TestGeneratePDFArtifact(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.rows = sampleRows()
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.7 test")}
	svc := NewReportService(repo, renderer, nil, 0, zap.NewNop())

	outcome, err := svc.Generate(context.Background(), FormatPDF)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("generate rejected: %+v", outcome)
	}
	artifact, ok := outcome.Data.(ReportArtifact)
	if !ok {
		t.Fatalf("data is %T, want ReportArtifact", outcome.Data)
	}
	if artifact.ContentType != "application/pdf" {
		t.Errorf("content type %q", artifact.ContentType)
	}
	if artifact.Disposition != `inline; filename="complaints-report.pdf"` {
		t.Errorf("disposition %q", artifact.Disposition)
	}
	if !bytes.Equal(artifact.Buffer, renderer.pdf) {
		t.Errorf("artifact buffer does not carry the rendered bytes")
	}
	if artifact.FilePath != "" {
		t.Errorf("pdf artifact has file path %q", artifact.FilePath)
	}
}

func TestGenerateCSVArtifact(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.rows = sampleRows()
	renderer := &fakeRenderer{csvPath: "/tmp/complaints-report-x.csv"}
	svc := NewReportService(repo, renderer, nil, 0, zap.NewNop())

	outcome, err := svc.Generate(context.Background(), FormatCSV)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("generate rejected: %+v", outcome)
	}
	artifact := outcome.Data.(ReportArtifact)
	if artifact.ContentType != "text/csv" {
		t.Errorf("content type %q", artifact.ContentType)
	}
	if artifact.Disposition != `attachment; filename="complaints-report.csv"` {
		t.Errorf("disposition %q", artifact.Disposition)
	}
	if artifact.FilePath != renderer.csvPath {
		t.Errorf("file path %q, want %q", artifact.FilePath, renderer.csvPath)
	}
	if len(artifact.Buffer) != 0 {
		t.Errorf("csv artifact carries an in-memory buffer")
	}
}

func TestGenerateRendererFailure(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.rows = sampleRows()
	renderer := &fakeRenderer{pdfErr: errors.New("font missing")}
	svc := NewReportService(repo, renderer, nil, 0, zap.NewNop())

	if _, err := svc.Generate(context.Background(), FormatPDF); err == nil {
		t.Fatal("expected renderer failure to surface as an error")
	}
}

func TestStatisticsWithoutCache(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.stats = domain.Statistics{Total: 10, Pending: 4, Handled: 5, Cancelled: 1}
	svc := NewReportService(repo, &fakeRenderer{}, nil, 0, zap.NewNop())

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if *stats != repo.stats {
		t.Errorf("stats=%+v, want %+v", *stats, repo.stats)
	}
	if repo.statsCalls != 1 {
		t.Errorf("store queried %d times, want 1", repo.statsCalls)
	}
}

type fakeStatsCache struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{data: map[string][]byte{}}
}

func (f *fakeStatsCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return val, nil
}

func (f *fakeStatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func TestStatisticsCacheHitSkipsStore(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.stats = domain.Statistics{Total: 99}
	cached := domain.Statistics{Total: 7, Pending: 3, Handled: 3, Cancelled: 1}
	encoded, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cache := newFakeStatsCache()
	cache.data[statsCacheKey] = encoded

	svc := NewReportService(repo, &fakeRenderer{}, cache, time.Minute, zap.NewNop())
	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if *stats != cached {
		t.Errorf("stats=%+v, want cached %+v", *stats, cached)
	}
	if repo.statsCalls != 0 {
		t.Errorf("store queried %d times on a cache hit, want 0", repo.statsCalls)
	}
}

func TestStatisticsCacheMissWritesBack(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.stats = domain.Statistics{Total: 12, Pending: 6, Handled: 4, Cancelled: 2}
	cache := newFakeStatsCache()

	svc := NewReportService(repo, &fakeRenderer{}, cache, time.Minute, zap.NewNop())
	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if *stats != repo.stats {
		t.Errorf("stats=%+v, want %+v", *stats, repo.stats)
	}
	if repo.statsCalls != 1 {
		t.Errorf("store queried %d times, want 1", repo.statsCalls)
	}
	if cache.setCalls != 1 {
		t.Errorf("cache written %d times, want 1", cache.setCalls)
	}
	var written domain.Statistics
	if err := json.Unmarshal(cache.data[statsCacheKey], &written); err != nil {
		t.Fatalf("unmarshal cached value: %v", err)
	}
	if written != repo.stats {
		t.Errorf("cached value=%+v, want %+v", written, repo.stats)
	}
}

func TestStatisticsCacheFailureFallsThrough(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.stats = domain.Statistics{Total: 5, Pending: 5}
	cache := newFakeStatsCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")

	svc := NewReportService(repo, &fakeRenderer{}, cache, time.Minute, zap.NewNop())
	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics returned error on cache failure: %v", err)
	}
	if *stats != repo.stats {
		t.Errorf("stats=%+v, want store result %+v", *stats, repo.stats)
	}
	if repo.statsCalls != 1 {
		t.Errorf("store queried %d times, want 1", repo.statsCalls)
	}
}

func TestStatisticsUnreachableRedisFallsThrough(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.stats = domain.Statistics{Total: 3, Handled: 3}

	client := redis.NewClient(&redis.Options{
		Addr:            "127.0.0.1:1",
		DialTimeout:     50 * time.Millisecond,
		ReadTimeout:     50 * time.Millisecond,
		WriteTimeout:    50 * time.Millisecond,
		MaxRetries:      -1,
		PoolTimeout:     50 * time.Millisecond,
		MinIdleConns:    0,
		ConnMaxIdleTime: time.Second,
	})
	defer client.Close()

	svc := NewReportService(repo, &fakeRenderer{}, NewRedisStatsCache(client), time.Minute, zap.NewNop())
	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics returned error with unreachable redis: %v", err)
	}
	if *stats != repo.stats {
		t.Errorf("stats=%+v, want store result %+v", *stats, repo.stats)
	}
	if repo.statsCalls != 1 {
		t.Errorf("store queried %d times, want 1", repo.statsCalls)
	}
}
