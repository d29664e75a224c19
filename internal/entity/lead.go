package entity

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateLead = errors.New("an application for this business with this email already exists")

type Lead struct {
	ID string `json:"id"`

	// Step 1: personal information
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// Step 2: business information
	BusinessName string `json:"business_name"`
	TIN          string `json:"tin"`
	ZipCode      string `json:"zip_code"`

	// Step 3: business details
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	YearsInBusiness float64 `json:"years_in_business"`

	EnrichmentData map[string]any `json:"enrichment_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context, offset, limit int) ([]*Lead, error)
	Update(ctx context.Context, id string, patch *FormDataPatch) (*Lead, error)
	Delete(ctx context.Context, id string) (bool, error)
}
