package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fv(v float64) *float64 { return &v }

func fd(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEffectiveValue(t *testing.T) {
	c := Contract{
		BaseValue: 1000,
		Amendments: []Amendment{
			{Kind: AmendmentKindValue, AdditionalValue: fv(200)},
			{Kind: AmendmentKindScope},
			{Kind: AmendmentKindValue, AdditionalValue: fv(50)},
		},
	}
	assert.Equal(t, 1250.0, c.EffectiveValue())
}

func TestEffectiveValueNoAmendments(t *testing.T) {
	c := Contract{BaseValue: 1000}
	assert.Equal(t, 1000.0, c.EffectiveValue())
}

func TestEffectiveValueIgnoresNilAmount(t *testing.T) {
	c := Contract{
		BaseValue: 100,
		Amendments: []Amendment{
			{Kind: AmendmentKindValue},
			{Kind: AmendmentKindDeadline, AdditionalValue: fv(999)},
		},
	}
	// deadline amendments never contribute to value, even with an amount set
	assert.Equal(t, 100.0, c.EffectiveValue())
}

func TestEffectiveEndDateLastDeadlineWins(t *testing.T) {
	c := Contract{
		EndDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amendments: []Amendment{
			{Kind: AmendmentKindDeadline, NewEndDate: fd(2024, 2, 1)},
			{Kind: AmendmentKindValue, AdditionalValue: fv(10)},
			{Kind: AmendmentKindDeadline, NewEndDate: fd(2024, 3, 15)},
		},
	}
	assert.Equal(t, *fd(2024, 3, 15), c.EffectiveEndDate())
}

func TestEffectiveEndDateFallsBackToBase(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Contract{
		EndDate: base,
		Amendments: []Amendment{
			{Kind: AmendmentKindValue, AdditionalValue: fv(10)},
			{Kind: AmendmentKindScope},
		},
	}
	assert.Equal(t, base, c.EffectiveEndDate())
}

func TestAccumulatorDoesNotMutateContract(t *testing.T) {
	c := Contract{
		BaseValue: 500,
		EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amendments: []Amendment{
			{Kind: AmendmentKindValue, AdditionalValue: fv(100)},
			{Kind: AmendmentKindDeadline, NewEndDate: fd(2025, 6, 1)},
		},
	}

	_ = c.EffectiveValue()
	_ = c.EffectiveEndDate()
	_ = c.EffectiveValue()

	// derived quantities are recomputed on read; stored fields stay put
	assert.Equal(t, 500.0, c.BaseValue)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.EndDate)
	assert.Equal(t, 600.0, c.EffectiveValue())
}
