package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/minibank/docs"
	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_SwaggerDocRegistered(t *testing.T) {
	deps := &app.Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	cfg := &config.App{RateLimit: &config.RateLimit{MaxRequests: 100, Window: time.Minute}}
	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), docs.SwaggerInfo.Title)
	assert.Contains(t, string(body), "/accounts/transfer")
}
