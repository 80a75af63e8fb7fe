package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/sounding-archiver/internal/config"
	"github.com/couchcryptid/sounding-archiver/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces each stored sounding report to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured report topic.
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

// Publish writes a single report. The filename is the message key so that
// re-runs over the same day land on the same partition.
func (p *Publisher) Publish(ctx context.Context, report domain.Report) error {
	if err := p.writer.WriteMessages(ctx, reportToMessage(report)); err != nil {
		return fmt.Errorf("publish %s: %w", report.Filename, err)
	}
	p.logger.Debug("report published", "topic", p.writer.Topic, "key", report.Filename)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// reportToMessage maps a report onto a Kafka message.
func reportToMessage(report domain.Report) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(report.Filename),
		Value: []byte(report.Text),
		Headers: []kafkago.Header{
			{Key: "station", Value: []byte(report.Request.Station)},
			{Key: "date", Value: []byte(report.Request.Date.Format(domain.DateLayout))},
			{Key: "hour", Value: []byte(report.Request.Hour)},
			{Key: "content_type", Value: []byte("text/plain; charset=utf-8")},
		},
	}
}
