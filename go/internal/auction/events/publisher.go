package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher fans auction events out to interested consumers, such as the
// WebSocket gateway.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SubjectPrefix is the NATS subject root for auction events; the tournament
// id and event type are appended per message.
const SubjectPrefix = "auction.events"

// Subject returns the NATS subject for a tournament's events.
func Subject(tournamentID string, eventType EventType) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, tournamentID, eventType)
}

// NATSPublisher publishes auction events to NATS.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher connects to NATS and returns a publisher.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc}, nil
}

// Publish sends one event envelope to its subject.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.nc.Publish(Subject(event.TournamentID, event.Type), data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close drains the NATS connection.
func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// NewEvent wraps a payload into an event envelope.
func NewEvent(tournamentID string, eventType EventType, payload interface{}, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Event{
		ID:           uuid.New().String(),
		TournamentID: tournamentID,
		Type:         eventType,
		Timestamp:    at,
		Data:         data,
	}, nil
}

// NopPublisher drops every event. It is used when no event bus is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
