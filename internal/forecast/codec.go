package forecast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shorecast/swellboard/internal/domain"
)

// Persisted blob shape: {"fetchedAt": <epoch-millis>, "samples":
// [{"time": <ISO-8601>, "waveHeight": <number|null>}]}.

type persistedEntry struct {
	FetchedAt int64             `json:"fetchedAt"`
	Samples   []persistedSample `json:"samples"`
}

type persistedSample struct {
	Time       string   `json:"time"`
	WaveHeight *float64 `json:"waveHeight"`
}

func encodeEntry(e Entry) ([]byte, error) {
	p := persistedEntry{
		FetchedAt: e.FetchedAt.UnixMilli(),
		Samples:   make([]persistedSample, len(e.Samples)),
	}
	for i, s := range e.Samples {
		p.Samples[i] = persistedSample{
			Time:       s.Time.UTC().Format(time.RFC3339),
			WaveHeight: s.WaveHeightM,
		}
	}
	return json.Marshal(p)
}

func decodeEntry(data []byte) (Entry, error) {
	var p persistedEntry
	if err := json.Unmarshal(data, &p); err != nil {
		return Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	if p.FetchedAt <= 0 {
		return Entry{}, fmt.Errorf("decode entry: missing fetchedAt")
	}

	e := Entry{
		FetchedAt: time.UnixMilli(p.FetchedAt).UTC(),
		Samples:   make([]domain.ForecastSample, len(p.Samples)),
	}
	for i, s := range p.Samples {
		ts, err := time.Parse(time.RFC3339, s.Time)
		if err != nil {
			return Entry{}, fmt.Errorf("decode entry sample %d: %w", i, err)
		}
		e.Samples[i] = domain.ForecastSample{Time: ts.UTC(), WaveHeightM: s.WaveHeight}
	}
	return e, nil
}
