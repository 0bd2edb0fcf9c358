package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "piscanner.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())

	cfg := &config.Config{
		Title: "piscanner test",
		Webserver: config.Webserver{
			Port:         8080,
			ShutDownTime: 1,
		},
	}

	return New(cfg, st), st
}

func TestCheckAlive(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "WORKING", string(body))
}

func TestCheckAliveDuringShutdown(t *testing.T) {
	svc, _ := newTestService(t)
	svc.alive.Store(false)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRootRedirectsToDashboard(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestDashboardRendersScans(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, st.Insert("44Xabcdefgh"))

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "44Xabcdefgh")
	assert.Contains(t, string(body), store.KeyServerHost)
}

func TestAPIBarcodes(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, st.Insert("44Xaaaabbbb"))
	require.NoError(t, st.Insert("44Xccccdddd"))

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/barcodes?limit=1", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Barcodes []struct {
			ID      uint64 `json:"id"`
			Barcode string `json:"barcode"`
			Pending bool   `json:"pending"`
		} `json:"barcodes"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Barcodes, 1)

	// newest first
	assert.Equal(t, "44Xccccdddd", payload.Barcodes[0].Barcode)
	assert.True(t, payload.Barcodes[0].Pending)
}

func TestAPIBarcodesPendingFilter(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, st.Insert("44Xaaaabbbb"))
	require.NoError(t, st.Insert("44Xccccdddd"))

	barcodes, err := st.Read(10, true)
	require.NoError(t, err)
	require.Len(t, barcodes, 2)

	require.NoError(t, st.SetStatusBatch(map[string][]uint64{
		store.StatusAccepted: {barcodes[1].ID},
	}))

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/barcodes?pending=1", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	var payload struct {
		Barcodes []struct {
			Barcode string `json:"barcode"`
		} `json:"barcodes"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Barcodes, 1)
	assert.Equal(t, "44Xccccdddd", payload.Barcodes[0].Barcode)
}

func TestAPISettingsMasksToken(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, st.SetSettings(map[string]string{
		store.KeyServerToken: "secret-token",
	}))

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/settings", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "secret-token")

	var payload struct {
		Settings map[string]string `json:"settings"`
	}

	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "https://rotostampa.com", payload.Settings[store.KeyServerHost])
}

func TestMetricsEndpoint(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("metrics output should contain go runtime metrics")
	}
}
