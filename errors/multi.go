package errors

import (
	"reflect"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the given errors is not nil, nil is returned. A single non nil
// error is returned as it is. Appending to a collection extends it rather
// than nesting collections.
func Append(errs ...error) error {
	var res []error
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, err)
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return multiErr(res)
	}
}

// multiErr is a flat collection of errors.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack implements the unpacker interface.
func (m multiErr) Unpack() []error {
	return []error(m)
}

// ABCICode returns the code of the first error in the collection that
// declares one. Validation usually fails on the first broken field, so this
// is the most relevant code to report.
func (m multiErr) ABCICode() uint32 {
	for _, e := range m {
		if code := abciCode(e); code != internalABCICode {
			return code
		}
	}
	return internalABCICode
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
