package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsNotifier publishes each event on <prefix>.<task id>.<event type>.
type NatsNotifier struct {
	conn   *nats.Conn
	prefix string
}

func NewNatsNotifier(conn *nats.Conn, prefix string) *NatsNotifier {
	return &NatsNotifier{conn: conn, prefix: prefix}
}

func (n *NatsNotifier) Subject(event TaskEvent) string {
	return fmt.Sprintf("%s.%s.%s", n.prefix, event.TaskID, event.Type)
}

func (n *NatsNotifier) Publish(ctx context.Context, event TaskEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.conn.Publish(n.Subject(event), payload)
}
