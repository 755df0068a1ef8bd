package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/clients/adaptiveai"
	"github.com/teamwear/weatherfit-backend/internal/clients/comfortai"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, _ := logger.New("test")
	return log
}

// fakeChecklistRepo keys rows by sessionKey + date.
type fakeChecklistRepo struct {
	rows      map[string]*types.ChecklistSubmission
	createErr error
	creates   int
	// missFirstGet makes the first read miss, simulating a row that lands
	// between the existence check and the insert.
	missFirstGet bool
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{rows: map[string]*types.ChecklistSubmission{}}
}

func checklistKey(sessionKey string, date time.Time) string {
	return sessionKey + "|" + date.Format("2006-01-02")
}

func (f *fakeChecklistRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ChecklistSubmission) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	key := checklistKey(row.SessionKey, row.ChecklistDate)
	if _, ok := f.rows[key]; ok {
		return apperr.ErrDuplicate
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[key] = row
	return nil
}

func (f *fakeChecklistRepo) GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.ChecklistSubmission, error) {
	if f.missFirstGet {
		f.missFirstGet = false
		return nil, apperr.ErrNotFound
	}
	row, ok := f.rows[checklistKey(sessionKey, date)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return row, nil
}

// fakeOutfitRepo keys rows by sessionKey + date.
type fakeOutfitRepo struct {
	rows      map[string]*types.OutfitOfDay
	createErr error
}

func newFakeOutfitRepo() *fakeOutfitRepo {
	return &fakeOutfitRepo{rows: map[string]*types.OutfitOfDay{}}
}

func (f *fakeOutfitRepo) Create(ctx context.Context, tx *gorm.DB, outfit *types.OutfitOfDay) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := checklistKey(outfit.SessionKey, outfit.OutfitDate)
	if _, ok := f.rows[key]; ok {
		return apperr.ErrDuplicate
	}
	if outfit.ID == uuid.Nil {
		outfit.ID = uuid.New()
	}
	f.rows[key] = outfit
	return nil
}

func (f *fakeOutfitRepo) GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.OutfitOfDay, error) {
	row, ok := f.rows[checklistKey(sessionKey, date)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return row, nil
}

func (f *fakeOutfitRepo) byID(outfitID uuid.UUID) *types.OutfitOfDay {
	for _, row := range f.rows {
		if row.ID == outfitID {
			return row
		}
	}
	return nil
}

func (f *fakeOutfitRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, items []types.OutfitItem) error {
	row := f.byID(outfitID)
	if row == nil {
		return apperr.ErrNotFound
	}
	for i := range items {
		items[i].OutfitID = outfitID
	}
	row.Items = items
	return nil
}

func (f *fakeOutfitRepo) UpdateFeedback(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, rating int) error {
	row := f.byID(outfitID)
	if row == nil {
		return apperr.ErrNotFound
	}
	r := rating
	row.FeedbackRating = &r
	return nil
}

func (f *fakeOutfitRepo) UpdateStrategy(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, strategy string) error {
	row := f.byID(outfitID)
	if row == nil {
		return apperr.ErrNotFound
	}
	row.RecoStrategy = strategy
	return nil
}

func (f *fakeOutfitRepo) ListBySessionAndRange(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error) {
	var out []*types.OutfitOfDay
	for _, row := range f.rows {
		if row.SessionKey != sessionKey {
			continue
		}
		if row.OutfitDate.Before(from) || !row.OutfitDate.Before(toExclusive) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeOutfitRepo) ListWithFeedback(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error) {
	rows, _ := f.ListBySessionAndRange(ctx, tx, sessionKey, from, toExclusive)
	var out []*types.OutfitOfDay
	for _, row := range rows {
		if row.FeedbackRating != nil {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeClothingRepo serves a fixed catalog and counts popularity bumps.
type fakeClothingRepo struct {
	items      map[int64]*types.ClothingItem
	searchIDs  []int64
	searchErr  error
	increments []int64
}

func newFakeClothingRepo(items ...*types.ClothingItem) *fakeClothingRepo {
	f := &fakeClothingRepo{items: map[int64]*types.ClothingItem{}}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeClothingRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error {
	if item.ID == 0 {
		item.ID = int64(len(f.items) + 1)
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeClothingRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.ClothingItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return item, nil
}

func (f *fakeClothingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.ClothingItem, error) {
	var out []*types.ClothingItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeClothingRepo) SearchCandidateIDs(ctx context.Context, tx *gorm.DB, cond repos.ClothingSearchCondition) ([]int64, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchIDs, nil
}

func (f *fakeClothingRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeClothingRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeClothingRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ClothingItem, error) {
	var out []*types.ClothingItem
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeClothingRepo) IncrementSelected(ctx context.Context, tx *gorm.DB, id int64) error {
	item, ok := f.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	item.SelectedCount++
	f.increments = append(f.increments, id)
	return nil
}

// fakeAdaptiveRunRepo records runs in memory.
type fakeAdaptiveRunRepo struct {
	runs      []*types.AdaptiveRun
	biasValue *int
	biasErr   error
}

func (f *fakeAdaptiveRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.AdaptiveRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.RequestedAt = time.Now()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeAdaptiveRunRepo) find(feedbackID uuid.UUID) *types.AdaptiveRun {
	for _, run := range f.runs {
		if run.FeedbackID == feedbackID {
			return run
		}
	}
	return nil
}

func (f *fakeAdaptiveRunRepo) MarkSucceeded(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, latencyMs int64, userBias int, response datatypes.JSON) error {
	run := f.find(feedbackID)
	if run == nil {
		return apperr.ErrNotFound
	}
	now := time.Now()
	run.Status = types.RunSucceeded
	run.LatencyMs = &latencyMs
	run.UserBias = &userBias
	run.ResponsePayload = response
	run.SucceededAt = &now
	return nil
}

func (f *fakeAdaptiveRunRepo) MarkFailed(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, errPayload datatypes.JSON) error {
	run := f.find(feedbackID)
	if run == nil {
		return apperr.ErrNotFound
	}
	now := time.Now()
	run.Status = types.RunFailed
	run.ErrorPayload = errPayload
	run.FailedAt = &now
	return nil
}

func (f *fakeAdaptiveRunRepo) GetLatestByPeriod(ctx context.Context, tx *gorm.DB, sessionKey string, year, month int) (*types.AdaptiveRun, error) {
	var latest *types.AdaptiveRun
	for _, run := range f.runs {
		if run.SessionKey != sessionKey || run.Year != year || run.Month != month {
			continue
		}
		if latest == nil || run.RequestedAt.After(latest.RequestedAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, apperr.ErrNotFound
	}
	return latest, nil
}

func (f *fakeAdaptiveRunRepo) GetLatestSucceededBias(ctx context.Context, tx *gorm.DB, sessionKey string) (*int, error) {
	if f.biasErr != nil {
		return nil, f.biasErr
	}
	return f.biasValue, nil
}

// fakeClosetRepo keeps one closet per session key and an ordered item list.
type fakeClosetRepo struct {
	closets map[string]*types.Closet
	items   map[int64][]int64
	nextID  int64
	addErr  error
}

func newFakeClosetRepo() *fakeClosetRepo {
	return &fakeClosetRepo{closets: map[string]*types.Closet{}, items: map[int64][]int64{}}
}

func (f *fakeClosetRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, sessionKey string) (*types.Closet, error) {
	if closet, ok := f.closets[sessionKey]; ok {
		return closet, nil
	}
	f.nextID++
	closet := &types.Closet{ID: f.nextID, SessionKey: sessionKey}
	f.closets[sessionKey] = closet
	return closet, nil
}

func (f *fakeClosetRepo) AddItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error {
	if f.addErr != nil {
		return f.addErr
	}
	for _, id := range f.items[closetID] {
		if id == clothingID {
			return apperr.ErrDuplicate
		}
	}
	f.items[closetID] = append(f.items[closetID], clothingID)
	return nil
}

func (f *fakeClosetRepo) RemoveItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error {
	ids := f.items[closetID]
	for i, id := range ids {
		if id == clothingID {
			f.items[closetID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeClosetRepo) ListClothingIDs(ctx context.Context, tx *gorm.DB, closetID int64, category *types.ClothingCategory, limit int) ([]int64, error) {
	ids := f.items[closetID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return append([]int64(nil), ids...), nil
}

// fakeFavoriteRepo keys favorites by sessionKey + clothingID.
type fakeFavoriteRepo struct {
	rows map[string][]int64
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{rows: map[string][]int64{}}
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error {
	for _, id := range f.rows[sessionKey] {
		if id == clothingID {
			return apperr.ErrDuplicate
		}
	}
	f.rows[sessionKey] = append(f.rows[sessionKey], clothingID)
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error {
	ids := f.rows[sessionKey]
	for i, id := range ids {
		if id == clothingID {
			f.rows[sessionKey] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeFavoriteRepo) ListClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string) ([]int64, error) {
	return append([]int64(nil), f.rows[sessionKey]...), nil
}

func (f *fakeFavoriteRepo) FilterClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string, clothingIDs []int64) ([]int64, error) {
	have := map[int64]bool{}
	for _, id := range f.rows[sessionKey] {
		have[id] = true
	}
	var out []int64
	for _, id := range clothingIDs {
		if have[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) (bool, error) {
	for _, id := range f.rows[sessionKey] {
		if id == clothingID {
			return true, nil
		}
	}
	return false, nil
}

// fakeEventRepo records appended funnel events.
type fakeEventRepo struct {
	events    []*types.RecommendationEvent
	appendErr error
}

func (f *fakeEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.RecommendationEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) eventTypes() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType)
	}
	return out
}

// fakeWeatherService returns a fixed snapshot.
type fakeWeatherService struct {
	snap *types.WeatherSnapshot
	err  error
}

func (f *fakeWeatherService) TodaySmart(ctx context.Context, region string, lat, lon float64) (*types.WeatherSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

// fakeCandidateSelector returns a fixed pool.
type fakeCandidateSelector struct {
	pool []*types.ClothingItem
	err  error
}

func (f *fakeCandidateSelector) Select(ctx context.Context, temp int, filter CandidateFilter) ([]*types.ClothingItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pool, nil
}

// fakeComfortAI returns canned score results or an error.
type fakeComfortAI struct {
	results []comfortai.ScoreResult
	err     error
	calls   int
}

func (f *fakeComfortAI) Score(ctx context.Context, variant comfortai.Variant, req comfortai.ScoreRequest) ([]comfortai.ScoreResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// fakeAdaptiveAI returns a canned adaptive response or an error.
type fakeAdaptiveAI struct {
	resp    *adaptiveai.AdaptiveResponse
	err     error
	lastReq adaptiveai.AdaptiveRequest
}

func (f *fakeAdaptiveAI) Adaptive(ctx context.Context, year, month int, req adaptiveai.AdaptiveRequest) (*adaptiveai.AdaptiveResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.resp
	resp.FeedbackID = req.FeedbackID
	return &resp, nil
}
