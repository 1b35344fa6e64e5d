package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format works like the pkg/errors formatting. %+v prints the message
// followed by the trimmed stack trace, %v appends the file and line where
// the error was created.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Error())
			for _, f := range trimInternal(stackTrace(e)) {
				_, _ = fmt.Fprintf(s, "\n%+v", f)
			}
			return
		}
		st := stackTrace(e)
		if len(st) == 0 {
			_, _ = io.WriteString(s, e.Error())
			return
		}
		file, line := fileLine(st[0])
		_, _ = fmt.Fprintf(s, "%s [%s:%d]", e.Error(), file, line)
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

// trimInternal drops frames of the runtime and of the testing framework.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	var out errors.StackTrace
	for _, f := range st {
		file, _ := fileLine(f)
		if strings.Contains(file, "/src/runtime/") || strings.Contains(file, "/src/testing/") {
			continue
		}
		out = append(out, f)
	}
	return out
}

func fileLine(f errors.Frame) (string, int) {
	// This looks a bit like magic but it is taken from the pkg/errors
	// implementation: a Frame is a program counter plus one.
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	file, line := fn.FileLine(pc)
	return file, line
}
