package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/envutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/httpx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

// Client talks to the external PDF rendering service. One attempt per
// call: a retried render could leave a second artifact behind with no
// record pointing at it.
type Client interface {
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL: strings.TrimSpace(os.Getenv("RENDERER_BASE_URL")),
		APIKey:  strings.TrimSpace(os.Getenv("RENDERER_API_KEY")),
		Timeout: envutil.Dur("RENDERER_TIMEOUT_SECONDS", 60*time.Second),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing RENDERER_BASE_URL")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &client{
		log:        log.With("client", "RendererClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type RenderRequest struct {
	EventID    uuid.UUID `json:"event_id"`
	ContractID uuid.UUID `json:"contract_id"`
	HTML       string    `json:"html"`
	CSS        string    `json:"css"`
	ActorID    uuid.UUID `json:"actor_id"`
}

type RenderResult struct {
	ArtifactPath string `json:"artifact_path"`
}

func (c *client) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("renderer client unavailable")
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, fmt.Errorf("renderer: html required")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodPost, c.cfg.BaseURL+"/v1/render", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpx.HTTPError{Service: "renderer", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result RenderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("renderer: decode response: %w", err)
	}
	if strings.TrimSpace(result.ArtifactPath) == "" {
		return nil, fmt.Errorf("renderer: empty artifact_path in response")
	}
	return &result, nil
}
