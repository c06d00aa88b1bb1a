package executor

import "context"

// Executor runs external commands such as the audio capture and speech
// recognition binaries.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
