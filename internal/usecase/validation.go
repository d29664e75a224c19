package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/merchant-leads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeTIN strips hyphens and spaces from a tax identification
// number. "123-45-6789" becomes "123456789".
func NormalizeTIN(tin string) string {
	tin = strings.ReplaceAll(tin, "-", "")
	return strings.ReplaceAll(tin, " ", "")
}

func isValidTIN(tin string) bool {
	cleaned := NormalizeTIN(tin)
	if len(cleaned) != 9 && len(cleaned) != 10 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validateStep1Fields(p *entity.FormDataPatch) []ValidationError {
	var errs []ValidationError

	if p.FirstName != nil {
		if strings.TrimSpace(*p.FirstName) == "" {
			errs = append(errs, ValidationError{"first_name", "is required"})
		} else if len(*p.FirstName) > 100 {
			errs = append(errs, ValidationError{"first_name", "must not exceed 100 characters"})
		}
	}
	if p.LastName != nil {
		if strings.TrimSpace(*p.LastName) == "" {
			errs = append(errs, ValidationError{"last_name", "is required"})
		} else if len(*p.LastName) > 100 {
			errs = append(errs, ValidationError{"last_name", "must not exceed 100 characters"})
		}
	}
	if p.Email != nil && !isValidEmail(*p.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if p.Phone != nil {
		if len(*p.Phone) < 10 || len(*p.Phone) > 20 {
			errs = append(errs, ValidationError{"phone", "must be between 10 and 20 characters"})
		}
	}
	return errs
}

func validateStep2Fields(p *entity.FormDataPatch) []ValidationError {
	var errs []ValidationError

	if p.BusinessName != nil {
		if strings.TrimSpace(*p.BusinessName) == "" {
			errs = append(errs, ValidationError{"business_name", "is required"})
		} else if len(*p.BusinessName) > 200 {
			errs = append(errs, ValidationError{"business_name", "must not exceed 200 characters"})
		}
	}
	if p.TIN != nil && !isValidTIN(*p.TIN) {
		errs = append(errs, ValidationError{"tin", "must be 9 digits for SSN or 9-10 digits for EIN"})
	}
	if p.ZipCode != nil {
		if len(*p.ZipCode) < 5 || len(*p.ZipCode) > 10 {
			errs = append(errs, ValidationError{"zip_code", "must be between 5 and 10 characters"})
		}
	}
	return errs
}

func validateStep3Fields(p *entity.FormDataPatch) []ValidationError {
	var errs []ValidationError

	if p.MonthlyRevenue != nil && *p.MonthlyRevenue <= 0 {
		errs = append(errs, ValidationError{"monthly_revenue", "must be greater than 0"})
	}
	if p.YearsInBusiness != nil && *p.YearsInBusiness < 0 {
		errs = append(errs, ValidationError{"years_in_business", "must not be negative"})
	}
	return errs
}

// stepOrder maps each step key to the steps that must already be
// complete before it can be marked complete itself.
var stepOrder = map[string][]string{
	entity.Step1: {},
	entity.Step2: {entity.Step1},
	entity.Step3: {entity.Step1, entity.Step2},
}

// ValidateFormPatch checks a partial session update before it is merged:
// field format per step, plus the advancement guard — a step may only be
// marked complete once its predecessors are complete in the merged view.
func ValidateFormPatch(current entity.FormData, patch *entity.FormDataPatch) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateStep1Fields(patch)...)
	errs = append(errs, validateStep2Fields(patch)...)
	errs = append(errs, validateStep3Fields(patch)...)

	if patch.CompletedSteps != nil {
		merged := make(map[string]bool, len(current.CompletedSteps))
		for step, done := range current.CompletedSteps {
			merged[step] = done
		}
		for step, done := range patch.CompletedSteps {
			merged[step] = done
		}

		for step, done := range patch.CompletedSteps {
			if !done {
				continue
			}
			for _, prior := range stepOrder[step] {
				if !merged[prior] {
					errs = append(errs, ValidationError{
						Field:   "completed_steps",
						Message: fmt.Sprintf("%s cannot be completed before %s", step, prior),
					})
				}
			}
		}
	}

	return errs
}

// requiredLeadFields is the full set a lead must carry, in step order.
var requiredLeadFields = []string{
	"first_name", "last_name", "email", "phone",
	"business_name", "tin", "zip_code",
	"monthly_revenue", "years_in_business",
}

// MissingLeadFields returns the required fields absent from the form
// data, in the canonical order.
func MissingLeadFields(f entity.FormData) []string {
	present := map[string]bool{
		"first_name":        f.FirstName != nil && *f.FirstName != "",
		"last_name":         f.LastName != nil && *f.LastName != "",
		"email":             f.Email != nil && *f.Email != "",
		"phone":             f.Phone != nil && *f.Phone != "",
		"business_name":     f.BusinessName != nil && *f.BusinessName != "",
		"tin":               f.TIN != nil && *f.TIN != "",
		"zip_code":          f.ZipCode != nil && *f.ZipCode != "",
		"monthly_revenue":   f.MonthlyRevenue != nil && *f.MonthlyRevenue != 0,
		"years_in_business": f.YearsInBusiness != nil,
	}

	var missing []string
	for _, field := range requiredLeadFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// ValidateLeadFields runs the per-field format rules over a complete
// form. Presence is checked separately by MissingLeadFields.
func ValidateLeadFields(f entity.FormData) []ValidationError {
	patch := &entity.FormDataPatch{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Phone:           f.Phone,
		BusinessName:    f.BusinessName,
		TIN:             f.TIN,
		ZipCode:         f.ZipCode,
		MonthlyRevenue:  f.MonthlyRevenue,
		YearsInBusiness: f.YearsInBusiness,
	}

	var errs []ValidationError
	errs = append(errs, validateStep1Fields(patch)...)
	errs = append(errs, validateStep2Fields(patch)...)
	errs = append(errs, validateStep3Fields(patch)...)
	return errs
}
