package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

// envelope wraps every event with an id and emission time.
type envelope struct {
	ID        uuid.UUID       `json:"id"`
	Subject   string          `json:"subject"`
	EmittedAt time.Time       `json:"emitted_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (p *natsPublisher) Publish(_ context.Context, subject string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env, err := json.Marshal(envelope{
		ID:        uuid.New(),
		Subject:   subject,
		EmittedAt: time.Now().UTC(),
		Payload:   body,
	})
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, env)
}
