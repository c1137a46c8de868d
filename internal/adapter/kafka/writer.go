package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/venus-data/internal/config"
	"github.com/couchcryptid/venus-data/internal/domain"
)

// Writer publishes dataset records to a Kafka topic.
// It implements pipeline.Sink.
type Writer struct {
	writer *kafkago.Writer
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// Load publishes one message per record in a single WriteMessages call.
// Keys are stable per type and year so a topic can be compacted.
func (w *Writer) Load(ctx context.Context, ds domain.Dataset) (string, error) {
	location := "kafka://" + w.topic
	if len(ds.Records) == 0 {
		return location, nil
	}
	msgs := make([]kafkago.Message, len(ds.Records))
	for i := range ds.Records {
		msg, err := serializeToMessage(ds, ds.Records[i])
		if err != nil {
			return "", err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return "", fmt.Errorf("publish %s: %w", ds.Type, err)
	}
	w.logger.Info("dataset published", "topic", w.topic, "data_type", ds.Type, "messages", len(msgs))
	return location, nil
}

// Close flushes pending messages and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// recordMessage is the JSON value of each published message.
type recordMessage struct {
	DatasetID string          `json:"dataset_id"`
	DataType  domain.DataType `json:"data_type"`
	Unit      string          `json:"unit"`
	Seed      uint64          `json:"seed"`
	domain.Record
}

// serializeToMessage marshals one record of ds into a Kafka message.
func serializeToMessage(ds domain.Dataset, r domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(recordMessage{
		DatasetID: ds.ID,
		DataType:  ds.Type,
		Unit:      ds.Profile.Unit,
		Seed:      ds.Seed,
		Record:    r,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record %d: %w", ds.Type, r.EarthYear, err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(ds.Type, r.EarthYear)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "data_type", Value: []byte(ds.Type)},
			{Key: "dataset_id", Value: []byte(ds.ID)},
			{Key: "generated_at", Value: []byte(ds.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

func messageKey(t domain.DataType, year int) string {
	return fmt.Sprintf("%s-%d", t, year)
}
