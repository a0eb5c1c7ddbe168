package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to no-show", StatusPending, StatusNoShow, true},
		{"pending to active skips confirmation", StatusPending, StatusActive, false},
		{"confirmed to active", StatusConfirmed, StatusActive, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to completed skips pickup", StatusConfirmed, StatusCompleted, false},
		{"active to completed", StatusActive, StatusCompleted, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"active to no-show", StatusActive, StatusNoShow, false},
		{"no-show corrected to cancelled", StatusNoShow, StatusCancelled, true},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot reopen", StatusCancelled, StatusPending, false},
		{"unknown status", Status("Bogus"), StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusActive.Terminal())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("Unknown").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{MethodCard, MethodCash, MethodTransfer, MethodDepositRefund} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, PaymentMethod("Cheque").Valid())
}
