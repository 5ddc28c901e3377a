package ports

import (
	"context"
	"io"
)

// AttachmentStore keeps payment proofs and similar uploads out of the
// database. References are opaque to the order engine.
type AttachmentStore interface {
	// Store saves content and returns a reference to it. filename is a hint
	// used only for the extension.
	Store(ctx context.Context, filename string, content io.Reader) (string, error)

	// Delete removes a stored artifact. Deleting a missing reference is not an error.
	Delete(ctx context.Context, reference string) error
}
