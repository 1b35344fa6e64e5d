package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("connection refused")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrDepositNotFound,
			root: ErrDepositNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrDepositNotFound, "withdraw"),
			root: ErrDepositNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "load plan"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrDepositNotFound,
			b:      ErrDepositNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrDepositNotFound,
			b:      ErrPlanNotFound,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrDepositNotFound,
			b:      errors.Wrap(ErrDepositNotFound, "deposit 7"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrDepositNotFound,
			b:      errors.Wrap(ErrOverflow, "interest"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrDepositNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrDepositNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrDepositNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrDepositNotFound,
			b:      nil,
			wantIs: false,
		},
		"multierr with the same error": {
			a:      ErrDepositNotFound,
			b:      Append(ErrDepositNotFound, ErrDepositClosed),
			wantIs: true,
		},
		"multierr with random order": {
			a:      ErrDepositNotFound,
			b:      Append(ErrDepositClosed, ErrDepositNotFound),
			wantIs: true,
		},
		"multierr with wrapped err": {
			a:      ErrDepositNotFound,
			b:      Append(ErrDepositClosed, Wrap(ErrDepositNotFound, "test")),
			wantIs: true,
		},
		"multierr with nil error": {
			a:      ErrDepositNotFound,
			b:      Append(nil, nil),
			wantIs: false,
		},
		"multierr with different error": {
			a:      ErrDepositNotFound,
			b:      Append(ErrDepositClosed, ErrInvalidAmount),
			wantIs: false,
		},
		"multierr from nil": {
			a:      nil,
			b:      Append(ErrDepositClosed, ErrInvalidAmount),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestFromCode(t *testing.T) {
	e, ok := FromCode(ErrEnforcedPause.ABCICode())
	if !ok || e != ErrEnforcedPause {
		t.Fatalf("unexpected lookup result: %v %v", e, ok)
	}
	if _, ok := FromCode(999999); ok {
		t.Fatal("unregistered code must not resolve")
	}
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}
