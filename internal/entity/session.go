package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrStorageUnavailable = errors.New("storage service unavailable")
)

// Form step keys tracked in FormData.CompletedSteps.
const (
	Step1 = "step1"
	Step2 = "step2"
	Step3 = "step3"
)

// Session holds an in-progress multi-step application. It lives in the
// key-value store under a TTL that is renewed on every read and write.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
	FormData  FormData  `json:"form_data"`
}

// FormData is the accumulated form state. Fields are pointers because a
// session starts empty and fills in as steps are submitted.
type FormData struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	BusinessName *string `json:"business_name,omitempty"`
	TIN          *string `json:"tin,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`

	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty"`
	YearsInBusiness *float64 `json:"years_in_business,omitempty"`

	CompletedSteps map[string]bool `json:"completed_steps"`
	EnrichmentData map[string]any  `json:"enrichment_data,omitempty"`
	CurrentStep    int             `json:"current_step"`
}

// NewFormData returns the initial form state: no steps completed,
// current step 1.
func NewFormData() FormData {
	return FormData{
		CompletedSteps: map[string]bool{Step1: false, Step2: false, Step3: false},
		CurrentStep:    1,
	}
}

// FormDataPatch is a partial update. Nil fields are left untouched;
// CompletedSteps and EnrichmentData replace the stored value wholesale
// when present (top-level overwrite, no deep merge).
type FormDataPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	BusinessName *string `json:"business_name,omitempty"`
	TIN          *string `json:"tin,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`

	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty"`
	YearsInBusiness *float64 `json:"years_in_business,omitempty"`

	CompletedSteps map[string]bool `json:"completed_steps,omitempty"`
	EnrichmentData map[string]any  `json:"enrichment_data,omitempty"`
	CurrentStep    *int            `json:"current_step,omitempty"`
}

// Apply merges the patch into f with shallow key-overwrite semantics.
func (f *FormData) Apply(p *FormDataPatch) {
	if p == nil {
		return
	}
	if p.FirstName != nil {
		f.FirstName = p.FirstName
	}
	if p.LastName != nil {
		f.LastName = p.LastName
	}
	if p.Email != nil {
		f.Email = p.Email
	}
	if p.Phone != nil {
		f.Phone = p.Phone
	}
	if p.BusinessName != nil {
		f.BusinessName = p.BusinessName
	}
	if p.TIN != nil {
		f.TIN = p.TIN
	}
	if p.ZipCode != nil {
		f.ZipCode = p.ZipCode
	}
	if p.MonthlyRevenue != nil {
		f.MonthlyRevenue = p.MonthlyRevenue
	}
	if p.YearsInBusiness != nil {
		f.YearsInBusiness = p.YearsInBusiness
	}
	if p.CompletedSteps != nil {
		f.CompletedSteps = p.CompletedSteps
	}
	if p.EnrichmentData != nil {
		f.EnrichmentData = p.EnrichmentData
	}
	if p.CurrentStep != nil {
		f.CurrentStep = *p.CurrentStep
	}
}

type SessionStoreInterface interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, sessionID string, patch *FormDataPatch) (*Session, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
}
