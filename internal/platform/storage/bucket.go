package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/arganhr/backoffice/internal/platform/envutil"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// ObjectStore is the external object-storage collaborator case files and
// avatars are written to. Rows in the database only ever hold keys and
// URLs; bytes live behind this interface.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type bucketStore struct {
	log        *logger.Logger
	client     *storage.Client
	bucketName string
	cdnDomain  string
}

// NewBucketStore connects to GCS. BUCKET_NAME must be set; credentials
// come from GOOGLE_APPLICATION_CREDENTIALS_JSON or ambient ADC.
func NewBucketStore(ctx context.Context, log *logger.Logger) (ObjectStore, error) {
	storeLog := log.With("service", "BucketStore")
	bucketName := envutil.GetEnv("BUCKET_NAME", "", log)
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var BUCKET_NAME")
	}
	cdnDomain := envutil.GetEnv("CDN_DOMAIN", "", log)
	credsPath := envutil.GetEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "", log)

	var client *storage.Client
	var err error
	if credsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &bucketStore{
		log:        storeLog,
		client:     client,
		bucketName: bucketName,
		cdnDomain:  cdnDomain,
	}, nil
}

func (b *bucketStore) Upload(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := b.client.Bucket(b.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish object %q: %w", key, err)
	}
	return nil
}

func (b *bucketStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := b.client.Bucket(b.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (b *bucketStore) PublicURL(key string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, key)
}
