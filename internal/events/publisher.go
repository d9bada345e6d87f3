package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher emits change events for the write path.
type Publisher interface {
	PublishChange(event ChangeEvent) error
}

type natsPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewPublisher creates a publisher over an established NATS connection.
func NewPublisher(nc *nats.Conn, prefix string) (Publisher, error) {
	if nc == nil {
		return nil, fmt.Errorf("nats connection cannot be nil")
	}
	return &natsPublisher{nc: nc, prefix: prefix}, nil
}

func (p *natsPublisher) PublishChange(event ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(Subject(p.prefix, event.Entity), data)
}
