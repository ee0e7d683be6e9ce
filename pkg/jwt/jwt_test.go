package jwt

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseUserID(t *testing.T) {
	ctx := context.Background()

	token, err := Generate(ctx, "user-42", "secret")
	require.NoError(t, err)

	sub, err := ParseUserID(ctx, token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestParseUserID_WrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := Generate(ctx, "user-42", "secret")
	require.NoError(t, err)

	_, err = ParseUserID(ctx, token, "other-secret")
	require.Error(t, err)
}

func TestParseUserID_Garbage(t *testing.T) {
	_, err := ParseUserID(context.Background(), "not.a.token", "secret")
	require.Error(t, err)
}

func TestParseTokenFromHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	_, err = ParseTokenFromHeader(req)
	require.Error(t, err)

	req.Header.Set("Authorization", "Token abc")
	_, err = ParseTokenFromHeader(req)
	require.Error(t, err)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := ParseTokenFromHeader(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
