package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckoutStatus(t *testing.T) {
	now := date(2024, 1, 5)
	open := Checkout{CheckoutDate: date(2024, 1, 1), DueDate: date(2024, 1, 15)}
	assert.Equal(t, CheckoutOpen, open.Status())
	assert.Equal(t, CheckoutOpen, open.StatusAt(now))
	assert.False(t, open.OverdueAt(now))

	late := date(2024, 1, 20)
	assert.Equal(t, CheckoutOverdue, open.StatusAt(late))
	assert.True(t, open.OverdueAt(late))

	ret := date(2024, 1, 10)
	returned := Checkout{CheckoutDate: date(2024, 1, 1), DueDate: date(2024, 1, 15), ReturnDate: &ret}
	assert.Equal(t, CheckoutReturned, returned.Status())
	// Returned wins even past the due date.
	assert.Equal(t, CheckoutReturned, returned.StatusAt(date(2024, 2, 1)))
	assert.False(t, returned.OverdueAt(date(2024, 2, 1)))
}

func TestCheckoutDurationDays(t *testing.T) {
	ret := date(2024, 1, 10)
	returned := Checkout{CheckoutDate: date(2024, 1, 1), ReturnDate: &ret}
	assert.Equal(t, 9, returned.DurationDays(date(2024, 3, 1)))

	open := Checkout{CheckoutDate: date(2024, 1, 1)}
	assert.Equal(t, 14, open.DurationDays(date(2024, 1, 15)))
	assert.Equal(t, 0, open.DurationDays(date(2024, 1, 1)))

	// Clock skew never yields a negative duration.
	assert.Equal(t, 0, open.DurationDays(date(2023, 12, 31)))
}

func TestFollowUpOpen(t *testing.T) {
	for _, s := range []string{FollowUpPending, FollowUpContacted, FollowUpEscalated} {
		f := FollowUp{Status: s}
		assert.True(t, f.Open(), s)
	}
	assert.False(t, (&FollowUp{Status: FollowUpResolved}).Open())
}
