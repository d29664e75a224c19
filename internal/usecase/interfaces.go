package usecase

import (
	"context"

	"github.com/xavierca1/merchant-leads/internal/infra/integration/tib"
	"github.com/xavierca1/merchant-leads/internal/infra/queue"
)

type BusinessVerifier interface {
	Verify(ctx context.Context, businessName, zipCode string) (*tib.VerificationResult, error)
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}
