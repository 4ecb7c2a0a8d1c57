package app

import (
	"fmt"

	"github.com/eventdesk/eventdesk-backend/internal/platform/gcp"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/platform/renderer"
	"github.com/eventdesk/eventdesk-backend/internal/platform/sendgrid"
)

type Clients struct {
	Mail     sendgrid.Client
	Renderer renderer.Client
	Bucket   gcp.BucketService
}

func wireClients(log *logger.Logger) (Clients, error) {
	mail, err := sendgrid.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
	}
	rendererClient, err := renderer.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init renderer client: %w", err)
	}
	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gcs bucket service: %w", err)
	}
	return Clients{Mail: mail, Renderer: rendererClient, Bucket: bucket}, nil
}
