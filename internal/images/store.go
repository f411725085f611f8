package images

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("image not found")

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Store abstracts the image hosting provider used for avatars, trip covers
// and budget receipts.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (Image, error)
	Delete(ctx context.Context, id string) error
}
