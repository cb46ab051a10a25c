package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbanjana883/question-traker/config"
	"github.com/anirbanjana883/question-traker/handlers"
	"github.com/anirbanjana883/question-traker/store"
)

func newTestSheetHandler(t *testing.T) *handlers.SheetHandler {
	t.Helper()
	gw := store.NewFileGateway(filepath.Join(t.TempDir(), "data.json"))
	s, err := store.New(context.Background(), gw, nil)
	require.NoError(t, err)
	return &handlers.SheetHandler{Store: s}
}

func TestHealthEndpoint(t *testing.T) {
	mux := newMux(newTestSheetHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewHandler_CORSPreflight(t *testing.T) {
	h := newHandler(newTestSheetHandler(t), []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/reorder", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNewHandler_RejectsUnknownOrigin(t *testing.T) {
	h := newHandler(newTestSheetHandler(t), []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/api/sheet", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenGateway(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		gw, closeFn, err := openGateway(context.Background(), config.Environment{
			StoreDriver: config.DriverFile,
			DataFile:    filepath.Join(dir, "data.json"),
		})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &store.FileGateway{}, gw)
	})

	t.Run("sqlite", func(t *testing.T) {
		gw, closeFn, err := openGateway(context.Background(), config.Environment{
			StoreDriver: config.DriverSQLite,
			DatabaseURL: filepath.Join(dir, "sheet.db"),
		})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &store.GormGateway{}, gw)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := openGateway(context.Background(), config.Environment{StoreDriver: "mongo"})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}
