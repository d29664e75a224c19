package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/xavierca1/merchant-leads/internal/entity"
)

// uniqueLeadConstraint is the composite (email, business_name) unique
// constraint declared by the migrations.
const uniqueLeadConstraint = "uq_lead_email_business"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, first_name, last_name, email, phone, business_name, tin, zip_code,
		monthly_revenue, years_in_business, enrichment_data, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, first_name, last_name, email, phone, business_name, tin, zip_code,
			monthly_revenue, years_in_business, enrichment_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	enrichment, err := marshalEnrichment(lead.EnrichmentData)
	if err != nil {
		return fmt.Errorf("failed to encode enrichment data: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.BusinessName,
		lead.TIN,
		lead.ZipCode,
		lead.MonthlyRevenue,
		lead.YearsInBusiness,
		enrichment,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == uniqueLeadConstraint || strings.Contains(pqErr.Error(), uniqueLeadConstraint) {
				return entity.ErrDuplicateLead
			}
		}

		log.Printf("database error creating lead: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *LeadRepository) List(ctx context.Context, offset, limit int) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// Update applies the non-nil patch fields and refreshes updated_at.
// Returns (nil, nil) when the id does not exist.
func (r *LeadRepository) Update(ctx context.Context, id string, patch *entity.FormDataPatch) (*entity.Lead, error) {
	sets := []string{}
	args := []any{}
	i := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.BusinessName != nil {
		add("business_name", *patch.BusinessName)
	}
	if patch.TIN != nil {
		add("tin", *patch.TIN)
	}
	if patch.ZipCode != nil {
		add("zip_code", *patch.ZipCode)
	}
	if patch.MonthlyRevenue != nil {
		add("monthly_revenue", *patch.MonthlyRevenue)
	}
	if patch.YearsInBusiness != nil {
		add("years_in_business", *patch.YearsInBusiness)
	}
	if patch.EnrichmentData != nil {
		enrichment, err := marshalEnrichment(patch.EnrichmentData)
		if err != nil {
			return nil, fmt.Errorf("failed to encode enrichment data: %w", err)
		}
		add("enrichment_data", enrichment)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE leads SET %s WHERE id = $%d RETURNING `+leadColumns,
		strings.Join(sets, ", "), i,
	)

	return r.scanOne(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var enrichment []byte

	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.BusinessName,
		&lead.TIN,
		&lead.ZipCode,
		&lead.MonthlyRevenue,
		&lead.YearsInBusiness,
		&enrichment,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(enrichment) > 0 {
		if err := json.Unmarshal(enrichment, &lead.EnrichmentData); err != nil {
			return nil, fmt.Errorf("failed to decode enrichment data: %w", err)
		}
	}

	return &lead, nil
}

func (r *LeadRepository) scanOne(row *sql.Row) (*entity.Lead, error) {
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func marshalEnrichment(data map[string]any) (any, error) {
	if data == nil {
		return nil, nil
	}
	return json.Marshal(data)
}
