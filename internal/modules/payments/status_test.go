package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		gateway string
		want    orders.Status
	}{
		{"approved", orders.StatusPaid},
		{"rejected", orders.StatusFailed},
		{"cancelled", orders.StatusCancelled},
		{"pending", orders.StatusPending},
		{"in_process", orders.StatusPending},
		{"in_mediation", orders.StatusPending},
		{"charged_back", orders.StatusPending},
		{"some_future_status", orders.StatusPending},
		{"", orders.StatusPending},
		{"APPROVED", orders.StatusPaid},
		{" approved ", orders.StatusPaid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapStatus(tt.gateway), "gateway status %q", tt.gateway)
	}
}
