package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/meetscribe/backend/services/history/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTranscription_AssignsIDAndTimestamp(t *testing.T) {
	store := NewMemory()

	saved, err := store.SaveTranscription(context.Background(), &entity.Transcription{
		FileName:    "standup.mp3",
		FileSize:    2048,
		WordCount:   120,
		Text:        "we talked about the release",
		ASRProvider: "zai-sdk",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestDashboard_Empty(t *testing.T) {
	store := NewMemory()

	dashboard, err := store.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, dashboard.Stats.TotalTranscriptions)
	assert.Equal(t, 0, dashboard.Stats.TotalReports)
	assert.Empty(t, dashboard.RecentTranscriptions)
	assert.Empty(t, dashboard.RecentReports)
}

func TestDashboard_AggregatesStats(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for i, provider := range []string{"zai-sdk", "zai-sdk", "openrouter"} {
		_, err := store.SaveTranscription(ctx, &entity.Transcription{
			FileName:    fmt.Sprintf("meeting-%d.wav", i),
			FileSize:    1000,
			WordCount:   50,
			ASRProvider: provider,
		})
		require.NoError(t, err)
	}
	_, err := store.SaveReport(ctx, &entity.Report{
		Summary:     "weekly sync",
		KeyPoints:   "[]",
		ActionItems: "[]",
		LLMProvider: "openai",
	})
	require.NoError(t, err)

	dashboard, err := store.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, dashboard.Stats.TotalTranscriptions)
	assert.Equal(t, 1, dashboard.Stats.TotalReports)
	assert.Equal(t, int64(150), dashboard.Stats.TotalWords)
	assert.Equal(t, int64(3000), dashboard.Stats.TotalAudioSize)
	assert.Equal(t, []entity.ProviderCount{
		{Provider: "openrouter", Count: 1},
		{Provider: "zai-sdk", Count: 2},
	}, dashboard.Stats.TranscriptionsByProvider)
	assert.Equal(t, []entity.ProviderCount{
		{Provider: "openai", Count: 1},
	}, dashboard.Stats.ReportsByProvider)
}

func TestDashboard_RecentNewestFirstCappedAtTen(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		_, err := store.SaveTranscription(ctx, &entity.Transcription{
			FileName: fmt.Sprintf("take-%02d.wav", i),
		})
		require.NoError(t, err)
	}

	dashboard, err := store.Dashboard(ctx)
	require.NoError(t, err)

	require.Len(t, dashboard.RecentTranscriptions, 10)
	assert.Equal(t, "take-12.wav", dashboard.RecentTranscriptions[0].FileName)
	assert.Equal(t, "take-03.wav", dashboard.RecentTranscriptions[9].FileName)
}
