package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinancialReportCompute(t *testing.T) {
	r := &FinancialReport{
		Details: []DetailLine{
			{ReservationID: 1, TotalPrice: 200, AmountPaid: 150},
			{ReservationID: 2, TotalPrice: 120, AmountPaid: 120},
			{ReservationID: 3, TotalPrice: 80, AmountPaid: 0},
		},
	}
	r.Compute()

	assert.Equal(t, 400.0, r.TotalAmountDue)
	assert.Equal(t, 270.0, r.TotalPaymentsReceived)
	assert.Equal(t, 130.0, r.TotalRemainingBalance)
	assert.Equal(t, 3, r.TotalReservations)

	assert.Equal(t, 50.0, r.Details[0].Balance)
	assert.Equal(t, 0.0, r.Details[1].Balance)
	assert.Equal(t, 80.0, r.Details[2].Balance)
}

func TestFinancialReportComputeEmpty(t *testing.T) {
	r := &FinancialReport{}
	r.Compute()

	assert.Zero(t, r.TotalAmountDue)
	assert.Zero(t, r.TotalRemainingBalance)
	assert.Zero(t, r.TotalReservations)
}
