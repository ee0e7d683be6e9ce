package usecase

import (
	"context"
	"testing"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/settings/entity"
	"github.com/meetscribe/backend/services/settings/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return logger.WithContext(context.Background(), logger.Discard())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestGet_CreatesDefaultsOnFirstRead(t *testing.T) {
	u := New(storage.NewMemory())

	settings, err := u.Get(testCtx())

	require.NoError(t, err)
	assert.NotEmpty(t, settings.ID)
	assert.Equal(t, "zai-sdk", settings.ASRProvider)
	assert.Equal(t, "openai", settings.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", settings.LLMModel)
	assert.Equal(t, "pyannote", settings.DiarizationProvider)
	assert.True(t, settings.DiarizationEnabled)
}

func TestGet_SecondReadReturnsSameRecord(t *testing.T) {
	u := New(storage.NewMemory())

	first, err := u.Get(testCtx())
	require.NoError(t, err)
	second, err := u.Get(testCtx())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUpdate_PartialUpdateLeavesOtherFieldsIntact(t *testing.T) {
	u := New(storage.NewMemory())

	updated, err := u.Update(testCtx(), &entity.UpdateRequest{
		LLMModel:           strPtr("gpt-4o"),
		DiarizationEnabled: boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", updated.LLMModel)
	assert.False(t, updated.DiarizationEnabled)
	assert.Equal(t, "zai-sdk", updated.ASRProvider)
	assert.Equal(t, "openai", updated.LLMProvider)
}

func TestUpdate_Persists(t *testing.T) {
	u := New(storage.NewMemory())

	_, err := u.Update(testCtx(), &entity.UpdateRequest{ASRProvider: strPtr("openrouter")})
	require.NoError(t, err)

	settings, err := u.Get(testCtx())
	require.NoError(t, err)
	assert.Equal(t, "openrouter", settings.ASRProvider)
}

func TestUpdate_RejectsUnknownASRProvider(t *testing.T) {
	u := New(storage.NewMemory())

	_, err := u.Update(testCtx(), &entity.UpdateRequest{ASRProvider: strPtr("whisperx")})

	require.ErrorIs(t, err, entity.ErrInvalidASRProvider)
}

func TestUpdate_RejectsUnknownLLMProvider(t *testing.T) {
	u := New(storage.NewMemory())

	_, err := u.Update(testCtx(), &entity.UpdateRequest{LLMProvider: strPtr("bard")})

	require.ErrorIs(t, err, entity.ErrInvalidLLMProvider)
}

func TestUpdate_ValidationRunsBeforeAnyWrite(t *testing.T) {
	store := storage.NewMemory()
	u := New(store)

	_, err := u.Update(testCtx(), &entity.UpdateRequest{LLMProvider: strPtr("bard")})
	require.Error(t, err)

	_, err = store.Get(testCtx())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdate_AcceptsEveryAllowedProvider(t *testing.T) {
	for _, provider := range []string{"zai-sdk", "openrouter", "local"} {
		u := New(storage.NewMemory())
		_, err := u.Update(testCtx(), &entity.UpdateRequest{ASRProvider: strPtr(provider)})
		assert.NoError(t, err, "asr provider %q", provider)
	}
	for _, provider := range []string{"openai", "openrouter", "local", "anthropic"} {
		u := New(storage.NewMemory())
		_, err := u.Update(testCtx(), &entity.UpdateRequest{LLMProvider: strPtr(provider)})
		assert.NoError(t, err, "llm provider %q", provider)
	}
}
