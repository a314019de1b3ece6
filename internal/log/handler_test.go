package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsContextAttributes(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	ctx := WithCorrelationID(context.Background(), "run-1")
	ctx = WithCollection(ctx, "joinedEventIds")
	logger.InfoContext(ctx, "join event")

	sc := bufio.NewScanner(&b)
	require.True(t, sc.Scan())

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
	assert.Equal(t, "run-1", got[AttrKeyCorrelationID])
	assert.Equal(t, "joinedEventIds", got[AttrKeyCollection])
}

func TestContextHandlerToleratesMissingContextValues(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	logger.InfoContext(context.Background(), "startup")

	sc := bufio.NewScanner(&b)
	require.True(t, sc.Scan())

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
	assert.NotContains(t, got, AttrKeyCorrelationID)
	assert.NotContains(t, got, AttrKeyCollection)
}

func TestPrettyJSONHandlerIndents(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&b, &PrettyJSONHandlerOptions{PrettyPrint: true}))

	logger.Info("hello")

	assert.Contains(t, b.String(), "\n  \"msg\": \"hello\"")
}
