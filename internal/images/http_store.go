package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPStore talks to a self-hosted image service over its REST surface.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *HTTPStore) Upload(ctx context.Context, data []byte, contentType, folder string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/images?folder=%s", s.baseURL, folder), bytes.NewReader(data))

	if err != nil {
		return Image{}, err
	}

	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)

	if err != nil {
		return Image{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("image upload failed: status %d", resp.StatusCode)
	}

	var img Image

	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
		return Image{}, err
	}

	return img, nil
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/images/%s", s.baseURL, id), nil)

	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("image delete failed: status %d", resp.StatusCode)
	}

	return nil
}
