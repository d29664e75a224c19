package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/merchant-leads/internal/entity"
	"github.com/xavierca1/merchant-leads/internal/infra/queue"
)

// SubmitLeadUseCase turns completed form data into a persisted lead,
// either from a direct payload or from a finished session.
type SubmitLeadUseCase struct {
	Sessions entity.SessionStoreInterface
	Leads    entity.LeadRepositoryInterface
	Queue    QueueProducerInterface // optional, nil disables notifications
}

func NewSubmitLeadUseCase(
	sessions entity.SessionStoreInterface,
	leads entity.LeadRepositoryInterface,
	producer QueueProducerInterface,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Sessions: sessions,
		Leads:    leads,
		Queue:    producer,
	}
}

// CreateLead validates the nine required fields, persists the lead and
// fires the best-effort created notification.
func (uc *SubmitLeadUseCase) CreateLead(ctx context.Context, form entity.FormData) (*entity.Lead, error) {
	missing := MissingLeadFields(form)
	if len(missing) > 0 {
		return nil, NewAppErrorWithDetails(
			CodeValidationError,
			"required fields are missing",
			map[string]any{"missing_fields": missing},
		)
	}

	if fieldErrs := ValidateLeadFields(form); len(fieldErrs) > 0 {
		invalid := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			invalid = append(invalid, fe.Error())
		}
		return nil, NewAppErrorWithDetails(
			CodeValidationError,
			"validation failed",
			map[string]any{"invalid_fields": invalid},
		)
	}

	now := time.Now().UTC()
	lead := &entity.Lead{
		ID:              uuid.New().String(),
		FirstName:       *form.FirstName,
		LastName:        *form.LastName,
		Email:           *form.Email,
		Phone:           *form.Phone,
		BusinessName:    *form.BusinessName,
		TIN:             NormalizeTIN(*form.TIN),
		ZipCode:         *form.ZipCode,
		MonthlyRevenue:  *form.MonthlyRevenue,
		YearsInBusiness: *form.YearsInBusiness,
		EnrichmentData:  form.EnrichmentData,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrDuplicateLead) {
			return nil, NewAppErrorWithDetails(
				CodeDuplicateEntry,
				"an application for this business with this email already exists",
				map[string]any{"email": lead.Email, "business_name": lead.BusinessName},
			)
		}
		log.Printf("lead create failed for %s: %v", lead.BusinessName, err)
		return nil, NewAppError(CodeDatabaseError, "failed to create lead")
	}

	log.Printf("created lead %s: %s", lead.ID, lead.BusinessName)

	// Notification is best-effort: the lead is already durable.
	if uc.Queue != nil {
		payload := queue.LeadCreatedPayload{
			LeadID:       lead.ID,
			FirstName:    lead.FirstName,
			Email:        lead.Email,
			BusinessName: lead.BusinessName,
		}
		if err := uc.Queue.PublishLeadCreated(ctx, payload); err != nil {
			log.Printf("lead %s: failed to publish created event: %v", lead.ID, err)
		}
	}

	return lead, nil
}

// SubmitFromSession loads a session, requires every form step to be
// complete, creates the lead and clears the session. A failed session
// delete is logged, never propagated.
func (uc *SubmitLeadUseCase) SubmitFromSession(ctx context.Context, sessionID string) (*entity.Lead, error) {
	session, err := uc.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var incomplete []string
	for step, done := range session.FormData.CompletedSteps {
		if !done {
			incomplete = append(incomplete, step)
		}
	}
	if len(incomplete) > 0 {
		sort.Strings(incomplete)
		return nil, NewAppErrorWithDetails(
			CodeIncompleteForm,
			"all form steps must be completed",
			map[string]any{"incomplete_steps": incomplete},
		)
	}

	lead, err := uc.CreateLead(ctx, session.FormData)
	if err != nil {
		return nil, err
	}

	if _, err := uc.Sessions.Delete(ctx, sessionID); err != nil {
		log.Printf("session %s: delete after lead %s failed: %v", sessionID, lead.ID, err)
	}

	return lead, nil
}
