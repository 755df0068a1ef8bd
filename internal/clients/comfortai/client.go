package comfortai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// Variant selects which scoring model the AI service runs.
type Variant string

const (
	VariantBlendRatio    Variant = "BLEND_RATIO"
	VariantMaterialRatio Variant = "MATERIAL_RATIO"
)

// ScoreContext is the shared weather + bias context of one scoring call.
type ScoreContext struct {
	Weather  types.WeatherSnapshot `json:"weather"`
	PrevBias int                   `json:"prevBias"`
}

// ScoreItem is one candidate sent for scoring.
type ScoreItem struct {
	ClothingID     int64                `json:"clothingId"`
	Thickness      types.ThicknessLevel `json:"thickness"`
	CottonRatio    int                  `json:"cottonRatio"`
	PolyesterRatio int                  `json:"polyesterRatio"`
	EtcFiberRatio  int                  `json:"etcFiberRatio"`
}

type ScoreRequest struct {
	Context ScoreContext `json:"context"`
	Items   []ScoreItem  `json:"items"`
}

// ScoreResult is one scored candidate. Score is nil when the model could
// not score the item.
type ScoreResult struct {
	ClothingID int64    `json:"clothingId"`
	Score      *float64 `json:"score"`
	Analysis   string   `json:"analysis,omitempty"`
}

// Client calls the comfort scoring service. Exactly one attempt per call;
// recovering from failures is the caller's job.
type Client interface {
	Score(ctx context.Context, variant Variant, req ScoreRequest) ([]ScoreResult, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *logger.Logger) Client {
	baseURL := utils.GetEnv("COMFORT_AI_BASE_URL", "http://localhost:8000", log)
	connectTimeout := utils.GetEnvAsInt("COMFORT_AI_CONNECT_TIMEOUT_SECONDS", 2, log)
	readTimeout := utils.GetEnvAsInt("COMFORT_AI_READ_TIMEOUT_SECONDS", 5, log)

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: time.Duration(connectTimeout) * time.Second}).DialContext,
	}
	return &client{
		log:     log.With("client", "ComfortAIClient"),
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(readTimeout) * time.Second,
		},
	}
}

func (c *client) Score(ctx context.Context, variant Variant, req ScoreRequest) ([]ScoreResult, error) {
	path := "/api/score/blend-ratio"
	if variant == VariantMaterialRatio {
		path = "/api/score/material-ratio"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build score request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("comfort ai call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read comfort ai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("comfort ai http %d: %s", resp.StatusCode, string(raw))
	}

	var results []ScoreResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("decode comfort ai response: %w", err)
	}

	c.log.Debug("Comfort AI scored batch",
		"variant", variant,
		"items", len(req.Items),
		"results", len(results),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}
