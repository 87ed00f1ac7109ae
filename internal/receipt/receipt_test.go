package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwood-pta/portal/internal/model"
)

func TestRenderPaidDonation(t *testing.T) {
	paid := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	pdf, err := Render(model.Donation{
		ID:          17,
		DonorName:   "Dana Smith",
		Email:       "dana@example.com",
		AmountCents: 2500,
		Status:      model.DonationStatusPaid,
		Reference:   "don_abc",
		PaidAt:      &paid,
	})
	require.NoError(t, err)
	assert.True(t, len(pdf) > 500)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderRefusesPendingDonation(t *testing.T) {
	_, err := Render(model.Donation{ID: 2, Status: model.DonationStatusPending})
	assert.Error(t, err)
}
