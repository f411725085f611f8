package images

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// LogStore is the local fallback when no image service is configured. It
// fabricates URLs and logs what would have been uploaded.
type LogStore struct{}

func NewLogStore() *LogStore { return &LogStore{} }

func (s *LogStore) Upload(_ context.Context, data []byte, contentType, folder string) (Image, error) {
	id := uuid.NewString()

	log.Printf("imagestore.upload id=%s folder=%s content_type=%s bytes=%d", id, folder, contentType, len(data))

	return Image{
		ID:  id,
		URL: fmt.Sprintf("https://images.local/%s/%s", folder, id),
	}, nil
}

func (s *LogStore) Delete(_ context.Context, id string) error {
	log.Printf("imagestore.delete id=%s", id)
	return nil
}
