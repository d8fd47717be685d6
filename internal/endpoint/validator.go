package endpoint

import "fmt"

// ContentCheck accepts or rejects a response body. On rejection the reason
// is a short human-readable fragment; the evaluator appends the actual body.
type ContentCheck interface {
	Check(body []byte) (ok bool, reason string)
}

// ValidatorFunc is a programmable body predicate. It reports whether the
// body is acceptable and, when not, why.
type ValidatorFunc func(body []byte) (ok bool, reason string)

func (f ValidatorFunc) Check(body []byte) (bool, string) { return f(body) }

// literalMatch accepts only a body exactly equal to its value
// (case- and whitespace-sensitive).
type literalMatch string

func (m literalMatch) Check(body []byte) (bool, string) {
	if string(body) == string(m) {
		return true, ""
	}
	return false, fmt.Sprintf("expected content %q", string(m))
}
