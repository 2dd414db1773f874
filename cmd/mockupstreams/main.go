// Command mockupstreams serves canned NDBC, CO-OPS, and Stormglass responses
// for local development, so the service can run end to end without touching
// the live upstreams or spending forecast quota. Timestamps are generated
// relative to the current clock so cached and selected data always look
// current.
//
// Usage:
//
//	go run ./cmd/mockupstreams -addr :9090
//	NDBC_BASE_URL=http://localhost:9090 \
//	COOPS_BASE_URL=http://localhost:9090/api/datagetter \
//	STORMGLASS_BASE_URL=http://localhost:9090 \
//	go run ./cmd/swellboard
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/realtime2/", handleBuoyReport)
	mux.HandleFunc("GET /api/datagetter", handleTidePredictions)
	mux.HandleFunc("GET /weather/point", handleForecast)

	log.Printf("mock upstreams listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

// handleBuoyReport renders a realtime2 tabular report. The second station of
// the default configuration gets sparse rows so the newest-available
// extraction path is exercised during local runs.
func handleBuoyReport(w http.ResponseWriter, r *http.Request) {
	station := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/data/realtime2/"), ".txt")
	now := time.Now().UTC()

	var b strings.Builder
	b.WriteString("#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE\n")
	b.WriteString("#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft\n")

	row := func(t time.Time, wdir, wspd, gst, atmp, wtmp string) {
		fmt.Fprintf(&b, "%04d %02d %02d %02d %02d %s %s %s  1.2  12.0   8.5 270 1015.2  %s  %s  11.0   MM   MM    MM\n",
			t.Year(), t.Month(), t.Day(), t.Hour(), (t.Minute()/10)*10, wdir, wspd, gst, atmp, wtmp)
	}

	if station == "46236" {
		// Sparse sensors: wind only in the older row, temps only in the newest.
		row(now, "MM", "MM", "MM", "14.8", "15.3")
		row(now.Add(-30*time.Minute), "310", "4.6", "6.2", "MM", "MM")
	} else {
		row(now, "290", "6.7", "8.8", "13.9", "14.2")
		row(now.Add(-30*time.Minute), "280", "7.1", "9.0", "13.8", "14.1")
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, b.String())
}

func handleTidePredictions(w http.ResponseWriter, _ *http.Request) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	gmt := func(h, m int) string {
		return today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute).Format("2006-01-02 15:04")
	}

	resp := map[string]any{
		"predictions": []map[string]string{
			{"t": gmt(4, 12), "v": "1.1", "type": "L"},
			{"t": gmt(10, 48), "v": "4.9", "type": "H"},
			{"t": gmt(16, 33), "v": "0.6", "type": "L"},
			{"t": gmt(22, 57), "v": "5.4", "type": "H"},
		},
	}
	writeJSON(w, resp)
}

func handleForecast(w http.ResponseWriter, _ *http.Request) {
	start := time.Now().UTC().Truncate(time.Hour).Add(-2 * time.Hour)
	heights := []float64{0.9, 1.0, 1.2, 1.3, 1.1, 1.0, 0.8, 0.9}

	hours := make([]map[string]any, len(heights))
	for i, h := range heights {
		hour := map[string]any{
			"time":       start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			"waveHeight": map[string]float64{"noaa": h, "sg": h + 0.1},
		}
		// One hour with the configured source missing, to exercise null
		// magnitude handling downstream.
		if i == 5 {
			hour["waveHeight"] = map[string]float64{"sg": h + 0.1}
		}
		hours[i] = hour
	}
	writeJSON(w, map[string]any{"hours": hours})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
