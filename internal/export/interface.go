package export

import "context"

// Exporter writes the text to be narrated as a document a screen reader or
// sighted helper can open later.
type Exporter interface {
	Export(ctx context.Context, title, text string) (string, error)
}
