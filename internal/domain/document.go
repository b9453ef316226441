package domain

import "context"

// DocumentStore persists binary attachments and hands back an opaque
// reference string. The core never inspects the stored bytes again; it only
// keeps the reference on the application record.
type DocumentStore interface {
	Store(ctx context.Context, filename string, data []byte) (ref string, err error)
	Resolve(ctx context.Context, ref string) (string, error)
	Delete(ctx context.Context, ref string) error
}
