package config

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

func NewNatsConnection(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("task-market"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
