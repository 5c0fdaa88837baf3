package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error was provided, nil is returned. If only one non-nil
// error was provided, that error is returned unchanged. Otherwise a multi
// error is returned. A multi error matches (Is) any of the errors it
// contains and reports the code of the first one.
func Append(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if m, ok := err.(*multiErr); ok {
			flat = append(flat, m.errs...)
			continue
		}
		flat = append(flat, err)
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errs: flat}
	}
}

// Flatten returns all errors contained by given error. A nil error returns
// an empty list, a non multi error returns a single element list.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if m, ok := err.(*multiErr); ok {
		out := make([]error, len(m.errs))
		copy(out, m.errs)
		return out
	}
	return []error{err}
}

type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(m.errs), strings.Join(points, "\n\t"))
}

// Code returns the code of the first contained error, consistent with a
// fail-fast approach.
func (m *multiErr) Code() uint32 {
	return Code(m.errs[0])
}

// Is allows the standard library errors.Is to match any contained error.
func (m *multiErr) Is(target error) bool {
	root, ok := target.(*Error)
	if !ok {
		return false
	}
	return root.Is(m)
}
