package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantIs  *Error
		wantMsg string
	}{
		"nil error is dropped": {
			err: Field("Amount", nil, "must be positive"),
		},
		"field without a description": {
			err:     Field("PlanID", ErrInput, ""),
			wantIs:  ErrInput,
			wantMsg: `field "PlanID": invalid input`,
		},
		"description is formatted": {
			err:     Field("PenaltyRateBps", ErrInvalidPlan, "cannot exceed %d", 10000),
			wantIs:  ErrInvalidPlan,
			wantMsg: `field "PenaltyRateBps": cannot exceed 10000: invalid plan`,
		},
		"nested field keeps the inner code": {
			err:     Field("Plan", Field("MinTermDays", ErrInvalidPlan, "must be at least 1"), ""),
			wantIs:  ErrInvalidPlan,
			wantMsg: `field "Plan": field "MinTermDays": must be at least 1: invalid plan`,
		},
		"wrapped field error": {
			err:     Wrap(Field("DepositID", ErrInput, "must be 8 bytes"), "load msg"),
			wantIs:  ErrInput,
			wantMsg: `load msg: field "DepositID": must be 8 bytes: invalid input`,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.wantIs == nil {
				assert.NoError(t, tc.err)
				return
			}
			assert.True(t, tc.wantIs.Is(tc.err), "%+v", tc.err)
			assert.Equal(t, tc.wantMsg, tc.err.Error())
		})
	}
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Depositor", nil)
	assert.NoError(t, errs)

	errs = AppendField(errs, "MinTermDays", ErrInvalidPlan)
	errs = AppendField(errs, "MaxTermDays", ErrInvalidPlan)
	assert.True(t, ErrInvalidPlan.Is(errs))
	assert.False(t, ErrInvalidAmount.Is(errs))
	assert.Equal(t, ErrInvalidPlan.ABCICode(), abciCode(errs))
}
