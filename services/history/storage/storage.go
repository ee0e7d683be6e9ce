package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/history/entity"
)

const recentLimit = 10

type Storage interface {
	SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error)
	SaveReport(ctx context.Context, r *entity.Report) (*entity.Report, error)
	Dashboard(ctx context.Context) (*entity.Dashboard, error)
}

// memory keeps history in process, mirroring the durable layout. Used in
// tests and when no database DSN is configured.
type memory struct {
	mu             sync.RWMutex
	transcriptions []entity.Transcription
	reports        []entity.Report
	uuid           gen.UUIDGenerator
}

func NewMemory() Storage {
	return &memory{
		uuid: gen.UUID(),
	}
}

func (m *memory) SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.uuid.NextString()
	t.CreatedAt = time.Now()
	m.transcriptions = append(m.transcriptions, *t)
	return t, nil
}

func (m *memory) SaveReport(ctx context.Context, r *entity.Report) (*entity.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = m.uuid.NextString()
	r.CreatedAt = time.Now()
	m.reports = append(m.reports, *r)
	return r, nil
}

func (m *memory) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := entity.Stats{
		TotalTranscriptions: len(m.transcriptions),
		TotalReports:        len(m.reports),
	}

	transcriptionProviders := map[string]int{}
	for _, t := range m.transcriptions {
		stats.TotalWords += int64(t.WordCount)
		stats.TotalAudioSize += t.FileSize
		transcriptionProviders[t.ASRProvider]++
	}
	stats.TranscriptionsByProvider = providerCounts(transcriptionProviders)

	reportProviders := map[string]int{}
	for _, r := range m.reports {
		reportProviders[r.LLMProvider]++
	}
	stats.ReportsByProvider = providerCounts(reportProviders)

	return &entity.Dashboard{
		Stats:                stats,
		RecentTranscriptions: recentTranscriptions(m.transcriptions),
		RecentReports:        recentReports(m.reports),
	}, nil
}

func providerCounts(counts map[string]int) []entity.ProviderCount {
	out := make([]entity.ProviderCount, 0, len(counts))
	for provider, count := range counts {
		out = append(out, entity.ProviderCount{Provider: provider, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

func recentTranscriptions(all []entity.Transcription) []entity.Transcription {
	out := make([]entity.Transcription, 0, recentLimit)
	for i := len(all) - 1; i >= 0 && len(out) < recentLimit; i-- {
		out = append(out, all[i])
	}
	return out
}

func recentReports(all []entity.Report) []entity.Report {
	out := make([]entity.Report, 0, recentLimit)
	for i := len(all) - 1; i >= 0 && len(out) < recentLimit; i-- {
		out = append(out, all[i])
	}
	return out
}
