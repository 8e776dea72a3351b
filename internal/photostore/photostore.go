// Package photostore abstracts blob storage for uploaded images: user
// avatars and pantry scan photos. Database rows reference blobs by the
// storage key returned from Save.
package photostore

import (
	"context"
	"io"
)

type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
