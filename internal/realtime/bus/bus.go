package bus

import (
	"context"

	"github.com/studora/studora-backend/internal/realtime"
)

// Bus carries SSE messages between instances so a publish on one node
// reaches clients streaming from another.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
