package worker

import "context"

// Worker is a background process that runs until its context is cancelled.
type Worker interface {
	Start(ctx context.Context)
}
