package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lungeable/crunch-backend/internal/entity"
	"github.com/lungeable/crunch-backend/internal/infra/integration/analytics"
	"github.com/lungeable/crunch-backend/internal/infra/integration/formrelay"
	"github.com/lungeable/crunch-backend/internal/infra/queue"
)

type SubmitLeadInput struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsCoach bool   `json:"is_coach"`

	Goal      string `json:"goal"`
	Equipment string `json:"equipment"`
	Schedule  string `json:"schedule"`

	// Honeypot. Real visitors never fill it; bots do.
	Website string `json:"website"`

	PageURL   string `json:"page_url"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"user_agent"`

	SessionID  string `json:"session_id"`
	RefCode    string `json:"ref_code"`
	ReferredBy string `json:"referred_by"`

	Source string `json:"source"`
	Site   string `json:"site"`
}

type SubmitLeadOutput struct {
	ID      string `json:"id,omitempty"`
	Created bool   `json:"created"`
	RefCode string `json:"ref_code,omitempty"`
	Msg     string `json:"msg"`
}

// SubmitLeadUseCase turns one validated form into up to two best-effort
// writes (record store, form relay) and reconciles them into a single
// verdict: success if either lands, failure only when both are gone.
//
// Every collaborator here is optional. A nil port means the service was
// started without that integration, and call sites must carry on.
type SubmitLeadUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Events    entity.EventRepositoryInterface
	Relay     FormRelayInterface
	Analytics AnalyticsInterface
	Queue     QueueProducerInterface
	Site      string
}

func NewSubmitLeadUseCase(
	leads entity.LeadRepositoryInterface,
	events entity.EventRepositoryInterface,
	relay FormRelayInterface,
	tracker AnalyticsInterface,
	producer QueueProducerInterface,
	site string,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Leads:     leads,
		Events:    events,
		Relay:     relay,
		Analytics: tracker,
		Queue:     producer,
		Site:      site,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	// Bots fill the hidden field. Drop everything and answer exactly like a
	// clean submission so the caller can't tell it was filtered.
	if strings.TrimSpace(input.Website) != "" {
		log.Printf("🪤 honeypot tripped, dropping submission (session=%s)", input.SessionID)
		return &SubmitLeadOutput{Created: false, Msg: "You're on the list!"}, nil
	}

	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors(validationErrors),
		}
	}

	lead, err := uc.buildLead(input)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	// Audit trail, fire-and-forget: its failure never influences the verdict.
	uc.audit(ctx, "email_submit", lead.SessionID, lead.Email, input.Source)

	// Channel 1: record store upsert, duplicates absorbed.
	var storeErr error
	storeOK, created := false, false
	if uc.Leads != nil {
		created, storeErr = uc.Leads.Upsert(ctx, lead)
		storeOK = storeErr == nil
		if storeErr != nil {
			log.Printf("⚠️ lead store write failed: %v", storeErr)
		}
	}

	// Channel 2: form relay POST of the full payload, attempted regardless
	// of how the store write went.
	var relayErr error
	relayOK := false
	if uc.Relay != nil {
		relayErr = uc.Relay.Submit(ctx, uc.buildSubmission(lead, input))
		relayOK = relayErr == nil
		if relayErr != nil {
			log.Printf("⚠️ form relay write failed: %v", relayErr)
		}
	}

	if !storeOK && !relayOK {
		return nil, &TechnicalError{
			Code:    CodeSubmitFailed,
			Message: submitFailureMessage(relayErr, storeErr),
		}
	}

	// A brand-new row is what feeds the downstream notification email.
	// Resubmits of the same email stay silent end to end.
	if created && uc.Queue != nil {
		if err := uc.Queue.PublishLeadCreated(ctx, queue.LeadCreatedPayload{
			LeadID:     lead.ID,
			Email:      lead.Email,
			Name:       lead.Name,
			IsCoach:    lead.IsCoach,
			Source:     lead.Source,
			Site:       lead.Site,
			ReferredBy: lead.ReferredBy,
			CreatedAt:  lead.CreatedAt,
		}); err != nil {
			log.Printf("⚠️ lead notification publish failed: %v", err)
		}
	}

	// Conversion event only on the overall success path.
	if uc.Analytics != nil {
		go func() {
			if err := uc.Analytics.TrackLead(context.Background(), analytics.Event{
				Name:      "Lead",
				Email:     lead.Email,
				SessionID: lead.SessionID,
				Site:      lead.Site,
			}); err != nil {
				log.Printf("⚠️ analytics track failed: %v", err)
			}
		}()
	}

	return &SubmitLeadOutput{
		ID:      lead.ID,
		Created: created,
		RefCode: lead.RefCode,
		Msg:     "You're on the list!",
	}, nil
}

func (uc *SubmitLeadUseCase) buildLead(input SubmitLeadInput) (*entity.Lead, error) {
	lead, err := entity.NewLead(input.Email, input.Name)
	if err != nil {
		return nil, err
	}

	lead.IsCoach = input.IsCoach
	lead.Goal = input.Goal
	lead.Equipment = input.Equipment
	lead.Schedule = input.Schedule

	attr, inboundRef := entity.ParseAttribution(input.PageURL)
	attr.Referrer = input.Referrer
	attr.UserAgent = input.UserAgent
	lead.Attribution = attr

	if input.SessionID != "" {
		lead.SessionID = input.SessionID
	}
	if input.RefCode != "" {
		lead.RefCode = input.RefCode
	}
	lead.ReferredBy = input.ReferredBy
	if lead.ReferredBy == "" {
		lead.ReferredBy = inboundRef
	}

	lead.Source = input.Source
	if lead.Source == "" {
		lead.Source = "hero"
	}
	lead.Site = input.Site
	if lead.Site == "" {
		lead.Site = uc.Site
	}

	return lead, nil
}

func (uc *SubmitLeadUseCase) buildSubmission(lead *entity.Lead, input SubmitLeadInput) formrelay.Submission {
	return formrelay.Submission{
		Email:       lead.Email,
		Name:        lead.Name,
		IsCoach:     lead.IsCoach,
		Goal:        lead.Goal,
		Equipment:   lead.Equipment,
		Schedule:    lead.Schedule,
		UTMSource:   lead.Attribution.UTMSource,
		UTMMedium:   lead.Attribution.UTMMedium,
		UTMCampaign: lead.Attribution.UTMCampaign,
		Referrer:    lead.Attribution.Referrer,
		UserAgent:   lead.Attribution.UserAgent,
		SessionID:   lead.SessionID,
		RefCode:     lead.RefCode,
		ReferredBy:  lead.ReferredBy,
		Source:      lead.Source,
		Site:        lead.Site,
	}
}

func (uc *SubmitLeadUseCase) audit(ctx context.Context, name, sessionID, email, source string) {
	if uc.Events == nil {
		return
	}

	payload, _ := json.Marshal(map[string]string{"source": source})
	event := &entity.Event{
		ID:        uuid.New().String(),
		Name:      name,
		SessionID: sessionID,
		Email:     email,
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}

	if err := uc.Events.Append(ctx, event); err != nil {
		log.Printf("⚠️ audit write failed (%s): %v", name, err)
	}
}

// submitFailureMessage prefers the relay's structured message, then the
// store's, then the generic retry line the page shows.
func submitFailureMessage(relayErr, storeErr error) string {
	var relayMsg string
	if re, ok := relayErr.(*formrelay.RelayError); ok {
		relayMsg = re.Message
	}
	if relayMsg != "" {
		return relayMsg
	}
	if storeErr != nil {
		return storeErr.Error()
	}
	if relayErr != nil {
		return relayErr.Error()
	}
	return "Something went wrong. Please try again."
}
