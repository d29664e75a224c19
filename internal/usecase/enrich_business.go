package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/merchant-leads/internal/entity"
	"github.com/xavierca1/merchant-leads/internal/infra/integration/tib"
)

// EnrichBusinessUseCase runs a (simulated) business verification and
// attaches the result to the owning session.
type EnrichBusinessUseCase struct {
	Sessions entity.SessionStoreInterface
	Verifier BusinessVerifier
}

func NewEnrichBusinessUseCase(sessions entity.SessionStoreInterface, verifier BusinessVerifier) *EnrichBusinessUseCase {
	return &EnrichBusinessUseCase{
		Sessions: sessions,
		Verifier: verifier,
	}
}

// Execute validates the input, checks the session exists, runs the
// verifier and best-effort attaches the result under the session's
// enrichment_data key. A failed attach is logged and swallowed: the
// verification result is still returned to the caller.
func (uc *EnrichBusinessUseCase) Execute(ctx context.Context, businessName, zipCode, sessionID string) (*tib.VerificationResult, error) {
	if businessName == "" || zipCode == "" {
		return nil, NewAppErrorWithDetails(
			CodeValidationError,
			"business name and ZIP code are required for enrichment",
			map[string]any{
				"business_name": businessName != "",
				"zip_code":      zipCode != "",
			},
		)
	}

	// The session must exist before we spend time on the lookup.
	if _, err := uc.Sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	result, err := uc.Verifier.Verify(ctx, businessName, zipCode)
	if err != nil {
		if errors.Is(err, tib.ErrUnavailable) {
			return nil, NewAppErrorWithDetails(
				CodeEnrichmentUnavailable,
				"unable to verify business at this time, please try again later",
				map[string]any{"business_name": businessName, "zip_code": zipCode},
			)
		}
		return nil, NewAppError(CodeEnrichmentUnavailable, "business verification failed")
	}

	patch := &entity.FormDataPatch{EnrichmentData: result.AsMap()}
	if _, err := uc.Sessions.Update(ctx, sessionID, patch); err != nil {
		log.Printf("session %s: failed to attach enrichment data: %v", sessionID, err)
	}

	return result, nil
}
