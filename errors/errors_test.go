package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"cause works for stderr as root": {
			err:  Wrap(std, "some helpful text"),
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
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
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
		"nil is not a non-nil error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"multierr with the same error": {
			a:      ErrNotFound,
			b:      Append(ErrNotFound, ErrState),
			wantIs: true,
		},
		"multierr with a wrapped error": {
			a:      ErrNotFound,
			b:      Append(Wrap(ErrNotFound, "gone"), ErrState),
			wantIs: true,
		},
		"multierr without the error": {
			a:      ErrNotFound,
			b:      Append(ErrState, ErrOverflow),
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatalf("wrapping nil must return nil: %+v", err)
	}
}

func TestWrappedErrorCode(t *testing.T) {
	cases := map[string]struct {
		err      error
		wantCode uint32
	}{
		"registered error": {
			err:      ErrNotFound,
			wantCode: 3,
		},
		"wrapped registered error": {
			err:      Wrap(ErrNotFound, "gone"),
			wantCode: 3,
		},
		"double wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "gone"), "sure"),
			wantCode: 3,
		},
		"stdlib error": {
			err:      stdlib.New("stdlib"),
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if code := abciCode(tc.err); code != tc.wantCode {
				t.Fatalf("unexpected code: %d", code)
			}
		})
	}
}

func TestStackTrace(t *testing.T) {
	err := Wrap(ErrNotFound, "outer")
	if st := stackTrace(err); st == nil {
		t.Fatal("wrapped error must carry a stack trace")
	}

	// Wrapping more than once must not attach another stack trace.
	err = Wrap(err, "even more outer")
	if st := stackTrace(err); st == nil {
		t.Fatal("wrapped error must carry a stack trace")
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("bang")
	}

	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("expected a panic error, got %+v", err)
	}
}
