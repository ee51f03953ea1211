// Package bus fans realtime messages out across backend instances.
package bus

import (
	"context"

	"github.com/prashantttzz/experimentlabs/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	// StartForwarder subscribes to the shared channel and invokes onMsg for
	// every message, including ones this instance published.
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
