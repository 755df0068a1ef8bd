package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/clients/adaptiveai"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

const defaultBias = 50

var defaultRequestModels = []string{"BLEND_RATIO", "MATERIAL_RATIO"}

// AdaptiveInput is the monthly adaptive-bias request. Every field is
// optional: the range defaults to the whole month, prevBias to the latest
// succeeded bias, and samples to the month's recorded outfit feedback.
type AdaptiveInput struct {
	From          *string             `json:"from,omitempty"`
	To            *string             `json:"to,omitempty"`
	PrevBias      *int                `json:"prevBias,omitempty"`
	Samples       []adaptiveai.Sample `json:"samples,omitempty"`
	RequestModels []string            `json:"requestModels,omitempty"`
}

// AdaptiveResult is one run's outcome as returned to the caller.
type AdaptiveResult struct {
	FeedbackID uuid.UUID                `json:"feedbackId"`
	Status     types.AdaptiveRunStatus  `json:"status"`
	UserBias   *int                     `json:"userBias,omitempty"`
	Models     []adaptiveai.ModelResult `json:"models,omitempty"`
	PrevBias   int                      `json:"prevBias"`
	Year       int                      `json:"year"`
	Month      int                      `json:"month"`
}

// FeedbackAdaptiveService runs the monthly bias recomputation against the
// adaptive AI service and keeps the full audit trail: a REQUESTED row before
// the call, flipped to SUCCEEDED or FAILED after. Upstream failures surface
// to the caller; there is no bias fallback.
type FeedbackAdaptiveService interface {
	Adaptive(ctx context.Context, sessionKey string, year, month int, input AdaptiveInput) (*AdaptiveResult, error)
	// MonthlyResult returns the newest run for the period, whatever its
	// status; apperr.ErrNotFound when the month has no runs.
	MonthlyResult(ctx context.Context, sessionKey string, year, month int) (*AdaptiveResult, error)
}

type feedbackAdaptiveService struct {
	db           *gorm.DB
	log          *logger.Logger
	adaptiveRepo repos.AdaptiveRunRepo
	outfitRepo   repos.OutfitRepo
	aiClient     adaptiveai.Client
	events       EventLogService
}

func NewFeedbackAdaptiveService(db *gorm.DB, log *logger.Logger, adaptiveRepo repos.AdaptiveRunRepo, outfitRepo repos.OutfitRepo, aiClient adaptiveai.Client, events EventLogService) FeedbackAdaptiveService {
	return &feedbackAdaptiveService{
		db:           db,
		log:          log.With("service", "FeedbackAdaptiveService"),
		adaptiveRepo: adaptiveRepo,
		outfitRepo:   outfitRepo,
		aiClient:     aiClient,
		events:       events,
	}
}

func (s *feedbackAdaptiveService) Adaptive(ctx context.Context, sessionKey string, year, month int, input AdaptiveInput) (*AdaptiveResult, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year is invalid", apperr.ErrInvalidArgument)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month is invalid", apperr.ErrInvalidArgument)
	}

	monthFrom, monthToExclusive := utils.MonthRangeKST(year, month)
	rangeFrom, rangeTo, err := resolveRange(input, monthFrom, monthToExclusive)
	if err != nil {
		return nil, err
	}

	prevBias, err := s.resolvePrevBias(ctx, sessionKey, input.PrevBias)
	if err != nil {
		return nil, err
	}

	samples := input.Samples
	if len(samples) == 0 {
		samples, err = s.samplesFromHistory(ctx, sessionKey, rangeFrom, rangeTo.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no feedback samples in range", apperr.ErrInvalidArgument)
	}
	for _, sample := range samples {
		if sample.Direction < -1 || sample.Direction > 1 {
			return nil, fmt.Errorf("%w: sample direction must be -1, 0 or 1", apperr.ErrInvalidArgument)
		}
	}

	models := input.RequestModels
	if len(models) == 0 {
		models = defaultRequestModels
	}

	feedbackID := uuid.New()
	req := adaptiveai.AdaptiveRequest{
		FeedbackID: feedbackID,
		Range: adaptiveai.DateRange{
			From: rangeFrom.Format("2006-01-02"),
			To:   rangeTo.Format("2006-01-02"),
		},
		PrevBias:      prevBias,
		Samples:       samples,
		RequestModels: models,
	}

	run := &types.AdaptiveRun{
		FeedbackID:     feedbackID,
		SessionKey:     sessionKey,
		Year:           year,
		Month:          month,
		RangeFrom:      rangeFrom,
		RangeTo:        rangeTo,
		Status:         types.RunRequested,
		PrevBias:       prevBias,
		RequestModels:  datatypes.NewJSONSlice(models),
		RequestPayload: marshalJSON(req),
	}
	if err := s.adaptiveRepo.Create(ctx, nil, run); err != nil {
		return nil, err
	}
	_ = s.events.Emit(ctx, sessionKey, nil, types.FunnelStepAdaptive, types.EventAdaptiveRequested, map[string]interface{}{
		"feedbackId": feedbackID,
		"year":       year,
		"month":      month,
		"samples":    len(samples),
	})

	start := time.Now()
	resp, err := s.aiClient.Adaptive(ctx, year, month, req)
	if err != nil {
		if markErr := s.adaptiveRepo.MarkFailed(ctx, nil, feedbackID, marshalJSON(map[string]string{"error": err.Error()})); markErr != nil {
			s.log.Error("Adaptive run FAILED mark failed", "feedback_id", feedbackID, "error", markErr)
		}
		_ = s.events.Emit(ctx, sessionKey, nil, types.FunnelStepAdaptive, types.EventAdaptiveFailed, map[string]interface{}{
			"feedbackId": feedbackID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}

	latency := time.Since(start).Milliseconds()
	if err := s.adaptiveRepo.MarkSucceeded(ctx, nil, feedbackID, latency, resp.UserBias, marshalJSON(resp)); err != nil {
		return nil, err
	}
	_ = s.events.Emit(ctx, sessionKey, nil, types.FunnelStepAdaptive, types.EventAdaptiveSucceeded, map[string]interface{}{
		"feedbackId": feedbackID,
		"userBias":   resp.UserBias,
		"latency_ms": latency,
	})

	bias := resp.UserBias
	return &AdaptiveResult{
		FeedbackID: feedbackID,
		Status:     types.RunSucceeded,
		UserBias:   &bias,
		Models:     resp.Models,
		PrevBias:   prevBias,
		Year:       year,
		Month:      month,
	}, nil
}

func (s *feedbackAdaptiveService) MonthlyResult(ctx context.Context, sessionKey string, year, month int) (*AdaptiveResult, error) {
	run, err := s.adaptiveRepo.GetLatestByPeriod(ctx, nil, sessionKey, year, month)
	if err != nil {
		return nil, err
	}

	result := &AdaptiveResult{
		FeedbackID: run.FeedbackID,
		Status:     run.Status,
		UserBias:   run.UserBias,
		PrevBias:   run.PrevBias,
		Year:       run.Year,
		Month:      run.Month,
	}
	if len(run.ResponsePayload) > 0 {
		var resp adaptiveai.AdaptiveResponse
		if err := json.Unmarshal(run.ResponsePayload, &resp); err == nil {
			result.Models = resp.Models
		}
	}
	return result, nil
}

// resolvePrevBias prefers an explicit request value, then the latest
// succeeded run's bias, then neutral.
func (s *feedbackAdaptiveService) resolvePrevBias(ctx context.Context, sessionKey string, explicit *int) (int, error) {
	if explicit != nil {
		if *explicit < 0 || *explicit > 100 {
			return 0, fmt.Errorf("%w: prevBias must be 0-100", apperr.ErrInvalidArgument)
		}
		return *explicit, nil
	}
	bias, err := s.adaptiveRepo.GetLatestSucceededBias(ctx, nil, sessionKey)
	if err != nil {
		return 0, err
	}
	if bias == nil {
		return defaultBias, nil
	}
	return *bias, nil
}

func (s *feedbackAdaptiveService) samplesFromHistory(ctx context.Context, sessionKey string, from, toExclusive time.Time) ([]adaptiveai.Sample, error) {
	rows, err := s.outfitRepo.ListWithFeedback(ctx, nil, sessionKey, from, toExclusive)
	if err != nil {
		return nil, err
	}
	samples := make([]adaptiveai.Sample, 0, len(rows))
	for _, row := range rows {
		if row.FeedbackRating == nil {
			continue
		}
		ids := make([]int64, 0, len(row.Items))
		for _, it := range row.Items {
			ids = append(ids, it.ClothingID)
		}
		samples = append(samples, adaptiveai.Sample{
			Timestamp:           row.OutfitDate,
			Direction:           *row.FeedbackRating,
			SelectedClothingIDs: ids,
		})
	}
	return samples, nil
}

// resolveRange clamps an optional explicit range to the month; defaults to
// the whole month. Returned bounds are inclusive date values.
func resolveRange(input AdaptiveInput, monthFrom, monthToExclusive time.Time) (time.Time, time.Time, error) {
	from := monthFrom
	to := monthToExclusive.AddDate(0, 0, -1)

	if input.From != nil {
		parsed, err := time.Parse("2006-01-02", *input.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be YYYY-MM-DD", apperr.ErrInvalidArgument)
		}
		from = parsed
	}
	if input.To != nil {
		parsed, err := time.Parse("2006-01-02", *input.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be YYYY-MM-DD", apperr.ErrInvalidArgument)
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range end precedes start", apperr.ErrInvalidArgument)
	}
	if from.Before(monthFrom) || !to.Before(monthToExclusive) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range must stay within the month", apperr.ErrInvalidArgument)
	}
	return from, to, nil
}

func marshalJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
