package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented errors are directly included into the result set rather than
// through the parent error that they are clubbed together by.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		res = append(res, flatten(e)...)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

func flatten(err error) []error {
	if isNilErr(err) {
		return nil
	}
	if u, ok := err.(unpacker); ok {
		var res []error
		for _, e := range u.Unpack() {
			res = append(res, flatten(e)...)
		}
		return res
	}
	return []error{err}
}

// multiError represents a group of errors. It is a result of clubbing
// multiple errors together into a single entity.
type multiError []error

var _ unpacker = (multiError)(nil)

// Unpack implements unpacker interface.
func (e multiError) Unpack() []error {
	return e
}

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode implements coder interface. For a group of errors the code of the
// first error is returned as this is consistent with the fail-fast approach.
func (e multiError) ABCICode() uint32 {
	if len(e) == 0 {
		return SuccessABCICode
	}
	return abciCode(e[0])
}

// unpacker is an interface implemented by an error that represents a
// collection of other errors.
type unpacker interface {
	// Unpack returns all errors that this error is made of.
	Unpack() []error
}
