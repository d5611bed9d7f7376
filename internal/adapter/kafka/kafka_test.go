package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testAnalysis() domain.Analysis {
	a := domain.Analysis{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	var series domain.ZoneSeries
	for i := range series {
		series[i] = domain.Reading{CO2: 400, SO2: 5, NO2: 20, PM25: 10}
	}
	for _, z := range domain.Zones() {
		a.Zones[z] = domain.Assess(z, series, domain.ClimateReading{WindSpeed: 2}, domain.DefaultLimits)
	}
	series[domain.SeriesLength-1] = domain.Reading{CO2: 1500}
	a.Zones[domain.Valle] = domain.Assess(domain.Valle, series, domain.ClimateReading{}, domain.DefaultLimits)
	return a
}

func TestSerializeToMessage(t *testing.T) {
	analysis := testAnalysis()

	msg, err := serializeToMessage(analysis, analysis.Zones[domain.Valle])
	require.NoError(t, err)

	assert.Equal(t, []byte("valle"), msg.Key)
	require.Len(t, msg.Headers, 4)
	assert.Equal(t, "zone", msg.Headers[0].Key)
	assert.Equal(t, []byte("Valle"), msg.Headers[0].Value)
	assert.Equal(t, "alert", msg.Headers[1].Key)
	assert.Equal(t, []byte("true"), msg.Headers[1].Value)
	assert.Equal(t, "run_id", msg.Headers[2].Key)
	assert.Equal(t, []byte("run-1"), msg.Headers[2].Value)
	assert.Equal(t, "generated_at", msg.Headers[3].Key)
	assert.Equal(t, []byte("2026-03-01T08:00:00Z"), msg.Headers[3].Value)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "Valle", body["zone"])
	assert.InDelta(t, 4, body["zone_number"], 0)
	assert.Equal(t, true, body["fused_alert"])
	assert.Equal(t, "run-1", body["run_id"])
	assert.Contains(t, body, "forecast")
	assert.Contains(t, body, "alerts")
	assert.NotContains(t, body, "Series")
	assert.Contains(t, body["recommendation"], "zone 4")
}

func TestPublisher_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := &Publisher{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, p.Publish(context.Background(), testAnalysis()))

	require.Len(t, fw.msgs, domain.ZoneCount)
	keys := make([]string, len(fw.msgs))
	for i, m := range fw.msgs {
		keys[i] = string(m.Key)
	}
	assert.Equal(t, []string{"centro", "norte", "sur", "valle", "pintag"}, keys)

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	brokerErr := errors.New("leader not available")
	p := &Publisher{writer: &fakeWriter{err: brokerErr}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.Publish(context.Background(), testAnalysis())
	require.ErrorIs(t, err, brokerErr)
}

func TestNewPublisher_UsesConfig(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "air-quality-assessments"}
	p := NewPublisher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	w, ok := p.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "air-quality-assessments", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
