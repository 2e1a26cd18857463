package port

import (
	"context"
	"fmt"

	"video-ingest-service/ddd/domain/vo"
)

// Encoder produces every requested rendition from one input file in a
// single invocation. Implementations must terminate the underlying
// process when ctx is cancelled and never leave it running after the
// caller gives up.
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputDir string, renditions []vo.Rendition) error
}

// ExitError reports a non-zero encoder exit.
type ExitError struct {
	Code   int
	Output string // tail of the combined encoder output
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with code %d", e.Code)
}
