package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/eventdesk/eventdesk-backend/internal/platform/envutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

// BucketService fronts the artifact bucket where the rendering service
// drops generated PDFs. This side only reads: signed URLs for delivery
// links and object bytes for mail attachments.
type BucketService interface {
	SignedURL(key string, ttl time.Duration) (string, error)
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	ReadAll(ctx context.Context, key string) ([]byte, error)
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	defaultTTL    time.Duration
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	bucketName := strings.TrimSpace(os.Getenv("ARTIFACT_GCS_BUCKET_NAME"))
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var ARTIFACT_GCS_BUCKET_NAME")
	}
	defaultTTL := envutil.Dur("ARTIFACT_SIGNED_URL_TTL", time.Hour)

	var opts []option.ClientOption
	if credsFile := strings.TrimSpace(os.Getenv("ARTIFACT_GCS_CREDENTIALS_FILE")); credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadOnly))

	stClient, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info("Artifact storage initialized", "bucket", bucketName, "signed_url_ttl", defaultTTL.String())

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucketName,
		defaultTTL:    defaultTTL,
	}, nil
}

func (bs *bucketService) SignedURL(key string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("object key required")
	}
	if ttl <= 0 {
		ttl = bs.defaultTTL
	}
	url, err := bs.storageClient.Bucket(bs.bucketName).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		bs.log.Warn("Signed URL issuance failed", "key", key, "error", err)
		return "", fmt.Errorf("sign url for %q: %w", key, err)
	}
	return url, nil
}

func (bs *bucketService) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("object key required")
	}
	rdr, err := bs.storageClient.Bucket(bs.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object %q: %w", key, err)
	}
	return rdr, nil
}

func (bs *bucketService) ReadAll(ctx context.Context, key string) ([]byte, error) {
	rdr, err := bs.DownloadFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	raw, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return raw, nil
}
