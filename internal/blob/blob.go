package blob

import (
	"context"
	"fmt"
	"time"

	"dailyQuestAPI/internal/apperr"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// Signed URLs are capped at seven days by the V4 scheme; the app refreshes
// image URLs well before that through the feed queries.
const signedURLTTL = 7 * 24 * time.Hour

// Store writes submission images into the Cloud Storage bucket and hands
// back a signed retrieval URL. Safe for concurrent use; one Store is shared
// across all requests.
type Store struct {
	bucket *gcs.BucketHandle
}

func New(ctx context.Context, app *firebase.App, bucketName string) (*Store, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("error opening bucket %s: %w", bucketName, err)
	}
	return &Store{bucket: bucket}, nil
}

// Put uploads data under key and returns a signed GET URL. Nothing is
// persisted elsewhere if the upload fails, so callers can abort cleanly.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", apperr.Unavailablef("upload %s: %v", key, err)
	}
	if err := w.Close(); err != nil {
		return "", apperr.Unavailablef("finalize upload %s: %v", key, err)
	}

	url, err := s.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(signedURLTTL),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", key, err)
	}
	return url, nil
}
