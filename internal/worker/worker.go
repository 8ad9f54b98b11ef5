package worker

import (
	"context"
)

// Worker is the contract shared by all long-running stream consumers.
type Worker interface {
	// Start runs the worker loop until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop signals the worker to shut down.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
