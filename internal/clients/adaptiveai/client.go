package adaptiveai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// DateRange bounds the feedback window, both ends inclusive, wire format
// YYYY-MM-DD.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Sample is one historical feedback observation.
type Sample struct {
	Timestamp           time.Time `json:"timestamp"`
	Direction           int       `json:"direction"`
	SelectedClothingIDs []int64   `json:"selectedClothingIds"`
}

type AdaptiveRequest struct {
	FeedbackID    uuid.UUID `json:"feedbackId"`
	Range         DateRange `json:"range"`
	PrevBias      int       `json:"prevBias"`
	Samples       []Sample  `json:"samples"`
	RequestModels []string  `json:"requestModels"`
}

type ModelItemScore struct {
	ClothingID int64   `json:"clothingId"`
	Score      float64 `json:"score"`
}

type ModelResult struct {
	ModelType string           `json:"modelType"`
	Results   []ModelItemScore `json:"results"`
}

type AdaptiveResponse struct {
	FeedbackID uuid.UUID     `json:"feedbackId"`
	UserBias   int           `json:"userBias"`
	Models     []ModelResult `json:"models"`
}

// Client calls the adaptive bias service. One attempt, no retry; failures
// surface to the caller because no bias fallback exists.
type Client interface {
	Adaptive(ctx context.Context, year, month int, req AdaptiveRequest) (*AdaptiveResponse, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *logger.Logger) Client {
	baseURL := utils.GetEnv("ADAPTIVE_AI_BASE_URL", "http://localhost:8000", log)
	connectTimeout := utils.GetEnvAsInt("ADAPTIVE_AI_CONNECT_TIMEOUT_SECONDS", 2, log)
	readTimeout := utils.GetEnvAsInt("ADAPTIVE_AI_READ_TIMEOUT_SECONDS", 7, log)

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: time.Duration(connectTimeout) * time.Second}).DialContext,
	}
	return &client{
		log:     log.With("client", "AdaptiveAIClient"),
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(readTimeout) * time.Second,
		},
	}
}

func (c *client) Adaptive(ctx context.Context, year, month int, req AdaptiveRequest) (*AdaptiveResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal adaptive request: %w", err)
	}

	url := fmt.Sprintf("%s/api/feedback/adaptive?year=%d&month=%d", c.baseURL, year, month)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build adaptive request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("adaptive ai call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read adaptive ai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("adaptive ai http %d: %s", resp.StatusCode, string(raw))
	}

	var parsed AdaptiveResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode adaptive ai response: %w", err)
	}
	if parsed.UserBias < 0 || parsed.UserBias > 100 {
		return nil, fmt.Errorf("adaptive ai returned bias out of range: %d", parsed.UserBias)
	}
	return &parsed, nil
}
