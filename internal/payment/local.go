package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LocalProvider issues uuid references and a fake pay URL without calling
// out anywhere.  Used in development and tests; the confirm endpoint accepts
// its references like any other provider's.
type LocalProvider struct {
	BaseURL string // e.g. "http://localhost:8080"
}

func (p *LocalProvider) CreateSession(_ context.Context, amountCents uint32, _ string) (Session, error) {
	ref := "don_" + uuid.NewString()
	return Session{
		Reference: ref,
		URL:       fmt.Sprintf("%s/pay/%s?amount=%d", p.BaseURL, ref, amountCents),
	}, nil
}
