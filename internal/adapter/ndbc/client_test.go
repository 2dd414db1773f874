package ndbc

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorecast/swellboard/internal/domain"
)

const fullReport = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
2026 08 24 17 40 180  5.1  6.2   1.2     9   6.8 210  1015.2 22.3  24.1  19.0   MM +0.2    MM
`

const sparseReport = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
2026 08 24 17 40 180  5.1  6.2   1.2     9   6.8 210  1015.2   MM    MM  19.0   MM +0.2    MM
2026 08 24 17 30  MM  4.8  5.9   1.1     9   6.6 212  1015.4 22.1  24.0  18.9   MM +0.1    MM
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveReport(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/realtime2/46042.txt", r.URL.Path)
		_, _ = io.WriteString(w, body)
	}))
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := serveReport(t, fullReport)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	obs, err := c.Fetch(context.Background(), "46042")
	require.NoError(t, err)

	assert.Equal(t, "46042", obs.StationID)
	require.NotNil(t, obs.WindDir)
	assert.Equal(t, "S", *obs.WindDir)
	require.NotNil(t, obs.WindKts)
	assert.InDelta(t, 9.9, *obs.WindKts, 0.1)
	require.NotNil(t, obs.GustKts)
	assert.InDelta(t, 12.1, *obs.GustKts, 0.1)
	require.NotNil(t, obs.AirTempF)
	assert.InDelta(t, 72.1, *obs.AirTempF, 0.1)
	require.NotNil(t, obs.WaterTempF)
	assert.InDelta(t, 75.4, *obs.WaterTempF, 0.1)
}

func TestClient_Fetch_PerFieldNewestAvailable(t *testing.T) {
	srv := serveReport(t, sparseReport)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	obs, err := c.Fetch(context.Background(), "46042")
	require.NoError(t, err)

	// Wind from the newest row, temperatures from the older one: each
	// quantity takes the first row where its sensor reported.
	require.NotNil(t, obs.WindKts)
	assert.InDelta(t, 9.9, *obs.WindKts, 0.1)
	require.NotNil(t, obs.WindDir)
	assert.Equal(t, "S", *obs.WindDir)
	require.NotNil(t, obs.AirTempF)
	assert.InDelta(t, 71.8, *obs.AirTempF, 0.1)
	require.NotNil(t, obs.WaterTempF)
	assert.InDelta(t, 75.2, *obs.WaterTempF, 0.1)
}

func TestClient_Fetch_AllMissingStaysNull(t *testing.T) {
	report := `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC
2026 08 24 17 40  MM   MM   MM    MM    MM    MM  MM      MM   MM    MM
`
	srv := serveReport(t, report)
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	obs, err := c.Fetch(context.Background(), "46042")
	require.NoError(t, err)

	assert.Nil(t, obs.WindDir)
	assert.Nil(t, obs.WindKts)
	assert.Nil(t, obs.GustKts)
	assert.Nil(t, obs.AirTempF)
	assert.Nil(t, obs.WaterTempF)
}

func TestClient_Fetch_NoDataRows(t *testing.T) {
	srv := serveReport(t, "#YY MM DD WDIR WSPD\n#yr mo dy degT m/s\n")
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "46042")
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestClient_Fetch_MissingHeader(t *testing.T) {
	srv := serveReport(t, "2026 08 24 17 40 180 5.1\n")
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "46042")
	assert.ErrorIs(t, err, domain.ErrMalformedReport)
}

func TestClient_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "46042")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "46042")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
