package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lungeable/crunch-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// memorySessionStore is an in-memory stand-in for the session KV table.
type memorySessionStore struct {
	data map[string]string
	puts int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{data: make(map[string]string)}
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, ok := s.data[sessionID+"/"+key]
	return v, ok, nil
}

func (s *memorySessionStore) Put(ctx context.Context, sessionID, key, value string) error {
	s.puts++
	s.data[sessionID+"/"+key] = value
	return nil
}

func TestAwardEngagementPersistsAfterEveryAward(t *testing.T) {
	store := newMemorySessionStore()
	uc := NewAwardEngagementUseCase(store, nil, entity.DefaultCounterConfig())
	ctx := context.Background()

	out, err := uc.Execute(ctx, AwardEngagementInput{SessionID: "s1", Delta: 1, Reason: entity.ReasonPreview})
	assert.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 1, store.puts)

	out, err = uc.Execute(ctx, AwardEngagementInput{SessionID: "s1", Delta: 2, Reason: entity.ReasonScenario})
	assert.NoError(t, err)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, 2, store.puts)
}

func TestAwardEngagementSessionsAreIsolated(t *testing.T) {
	store := newMemorySessionStore()
	uc := NewAwardEngagementUseCase(store, nil, entity.DefaultCounterConfig())
	ctx := context.Background()

	uc.Execute(ctx, AwardEngagementInput{SessionID: "a", Delta: 5, Reason: entity.ReasonPreview})
	out, err := uc.Execute(ctx, AwardEngagementInput{SessionID: "b", Delta: 1, Reason: entity.ReasonPreview})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Count)
}

func TestAwardEngagementRefusedAtCap(t *testing.T) {
	store := newMemorySessionStore()
	cfg := entity.DefaultCounterConfig()
	uc := NewAwardEngagementUseCase(store, nil, cfg)
	ctx := context.Background()

	uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: cfg.Cap, Reason: entity.ReasonPreview})

	out, err := uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: 1, Reason: entity.ReasonTap})
	assert.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, cfg.Cap, out.Count)
}

func TestAwardEngagementAuditPerAcceptedAward(t *testing.T) {
	store := newMemorySessionStore()
	mockEvents := new(MockEventRepository)
	cfg := entity.DefaultCounterConfig()
	uc := NewAwardEngagementUseCase(store, mockEvents, cfg)
	ctx := context.Background()

	mockEvents.On("Append", ctx, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Name == "engagement_award" && e.SessionID == "s"
	})).Return(nil).Once()

	uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: cfg.Cap, Reason: entity.ReasonPreview})

	// A refused award is not a transition and emits nothing.
	uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: 1, Reason: entity.ReasonPreview})

	mockEvents.AssertExpectations(t)
}

func TestAwardEngagementStateReadAppliesNoTransition(t *testing.T) {
	store := newMemorySessionStore()
	uc := NewAwardEngagementUseCase(store, nil, entity.DefaultCounterConfig())
	ctx := context.Background()

	// Seed a stale state from yesterday straight into the store.
	stale := entity.CounterState{
		Count: 30,
		Day:   time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
	}
	raw, _ := json.Marshal(stale)
	store.Put(ctx, "s", "rep_meter", string(raw))

	out, err := uc.State(ctx, "s")
	assert.NoError(t, err)
	assert.Equal(t, 30, out.Count, "reads never reset; the reset is lazy on the next award")

	// The next award resets before applying its delta.
	awarded, err := uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: 2, Reason: entity.ReasonPreview})
	assert.NoError(t, err)
	assert.Equal(t, 2, awarded.Count)
}

func TestAwardEngagementCorruptStateResets(t *testing.T) {
	store := newMemorySessionStore()
	uc := NewAwardEngagementUseCase(store, nil, entity.DefaultCounterConfig())
	ctx := context.Background()

	store.Put(ctx, "s", "rep_meter", "{not json")

	out, err := uc.Execute(ctx, AwardEngagementInput{SessionID: "s", Delta: 1, Reason: entity.ReasonPreview})
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Count)
}
