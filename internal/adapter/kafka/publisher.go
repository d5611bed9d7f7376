package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per zone assessment to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured assessment topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes every zone of the analysis and writes them in a single
// WriteMessages call.
func (p *Publisher) Publish(ctx context.Context, analysis domain.Analysis) error {
	msgs := make([]kafkago.Message, 0, domain.ZoneCount)
	for _, z := range domain.Zones() {
		msg, err := serializeToMessage(analysis, analysis.Zones[z])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write assessments: %w", err)
	}
	p.logger.Debug("assessments written", "count", len(msgs), "run_id", analysis.RunID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// assessmentMessage is the JSON value of a published message.
type assessmentMessage struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Zone        string    `json:"zone"`
	ZoneNumber  int       `json:"zone_number"`
	FusedAlert  bool      `json:"fused_alert"`
	domain.Assessment
}

// serializeToMessage marshals one zone assessment into a Kafka message keyed
// by the zone slug so a zone always lands on the same partition.
func serializeToMessage(analysis domain.Analysis, a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(assessmentMessage{
		RunID:       analysis.RunID,
		GeneratedAt: analysis.GeneratedAt,
		Zone:        a.Zone.Name(),
		ZoneNumber:  a.Zone.Number(),
		FusedAlert:  a.Alerts.Fused(),
		Assessment:  a,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s assessment: %w", a.Zone.Name(), err)
	}
	return kafkago.Message{
		Key:   []byte(a.Zone.Slug()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "zone", Value: []byte(a.Zone.Name())},
			{Key: "alert", Value: []byte(strconv.FormatBool(a.Alerts.Fused()))},
			{Key: "run_id", Value: []byte(analysis.RunID)},
			{Key: "generated_at", Value: []byte(analysis.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
