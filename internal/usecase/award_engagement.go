package usecase

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lungeable/crunch-backend/internal/entity"
)

const counterStateKey = "rep_meter"

type AwardEngagementInput struct {
	SessionID string             `json:"session_id"`
	Delta     int                `json:"delta"`
	Reason    entity.AwardReason `json:"reason"`
}

type EngagementStateOutput struct {
	Count     int    `json:"count"`
	Cap       int    `json:"cap"`
	Accepted  bool   `json:"accepted"`
	Milestone string `json:"milestone,omitempty"`
}

// AwardEngagementUseCase loads the session's counter state, applies the pure
// Award transition and persists the result. Persistence happens after every
// accepted transition, matching the page writing local storage on each rep.
type AwardEngagementUseCase struct {
	Sessions SessionStoreInterface
	Events   entity.EventRepositoryInterface
	Config   entity.CounterConfig

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAwardEngagementUseCase(sessions SessionStoreInterface, events entity.EventRepositoryInterface, cfg entity.CounterConfig) *AwardEngagementUseCase {
	return &AwardEngagementUseCase{
		Sessions: sessions,
		Events:   events,
		Config:   cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (uc *AwardEngagementUseCase) Execute(ctx context.Context, input AwardEngagementInput) (*EngagementStateOutput, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	state, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, &TechnicalError{Code: "STATE_LOAD_FAILED", Message: err.Error()}
	}

	var jitter time.Duration
	if uc.Config.CooldownJitter > 0 {
		jitter = time.Duration(uc.rng.Int63n(int64(uc.Config.CooldownJitter)))
	}

	next, accepted := uc.Config.Award(state, input.Delta, input.Reason, now, jitter)

	// Audit goes out per accepted award, independent of whether the state
	// write below lands.
	if accepted {
		uc.audit(ctx, input, next)
	}

	if err := uc.save(ctx, input.SessionID, next); err != nil {
		return nil, &TechnicalError{Code: "STATE_SAVE_FAILED", Message: err.Error()}
	}

	return &EngagementStateOutput{
		Count:     next.Count,
		Cap:       uc.Config.Cap,
		Accepted:  accepted,
		Milestone: uc.Config.ActiveMilestone(next, now),
	}, nil
}

// State reads the persisted counter without applying any transition; the
// daily reset stays lazy and only ever happens inside Execute.
func (uc *AwardEngagementUseCase) State(ctx context.Context, sessionID string) (*EngagementStateOutput, error) {
	state, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, &TechnicalError{Code: "STATE_LOAD_FAILED", Message: err.Error()}
	}

	return &EngagementStateOutput{
		Count:     state.Count,
		Cap:       uc.Config.Cap,
		Milestone: uc.Config.ActiveMilestone(state, time.Now()),
	}, nil
}

func (uc *AwardEngagementUseCase) load(ctx context.Context, sessionID string) (entity.CounterState, error) {
	var state entity.CounterState
	if uc.Sessions == nil {
		return state, nil
	}

	raw, ok, err := uc.Sessions.Get(ctx, sessionID, counterStateKey)
	if err != nil || !ok {
		return state, err
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt blob: start the meter over rather than wedging the session.
		log.Printf("⚠️ rep meter state unreadable for %s, resetting: %v", sessionID, err)
		return entity.CounterState{}, nil
	}
	return state, nil
}

func (uc *AwardEngagementUseCase) save(ctx context.Context, sessionID string, state entity.CounterState) error {
	if uc.Sessions == nil {
		return nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return uc.Sessions.Put(ctx, sessionID, counterStateKey, string(raw))
}

func (uc *AwardEngagementUseCase) audit(ctx context.Context, input AwardEngagementInput, state entity.CounterState) {
	if uc.Events == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"reason": input.Reason,
		"delta":  input.Delta,
		"count":  state.Count,
	})
	event := &entity.Event{
		ID:        uuid.New().String(),
		Name:      "engagement_award",
		SessionID: input.SessionID,
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}

	if err := uc.Events.Append(ctx, event); err != nil {
		log.Printf("⚠️ audit write failed (engagement_award): %v", err)
	}
}
