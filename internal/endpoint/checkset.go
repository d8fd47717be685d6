// Package endpoint holds the declarative description of what to check and
// how: per-target settings layered over check-wide defaults. A CheckSet is
// built once, then read-only; the same set may be evaluated repeatedly and
// concurrently.
package endpoint

import "time"

// defaults carries the check-wide fallback values. Zero values fall through
// to the package-level defaults at resolution time.
type defaults struct {
	method     string
	timeout    time.Duration
	timeoutSet bool
	status     *StatusRange
	content    *string
	validator  ValidatorFunc
}

// CheckSet is an ordered list of endpoint checks plus their shared defaults.
type CheckSet struct {
	defaults defaults
	targets  []Check
}

// New returns an empty check-set.
func New() *CheckSet {
	return &CheckSet{}
}

// FromURLs builds a check-set with one default-configured target per URL,
// in input order.
func FromURLs(urls ...string) *CheckSet {
	s := New()
	for _, u := range urls {
		s.AddTarget(u)
	}
	return s
}

// AddTarget appends a check for url and returns the set for chaining.
// It panics on an empty URL; that is a programming error, not a runtime
// condition. No other validation happens at build time — malformed
// combinations surface as ordinary check failures during evaluation.
func (s *CheckSet) AddTarget(url string, opts ...TargetOption) *CheckSet {
	if url == "" {
		panic("endpoint: AddTarget requires a non-empty URL")
	}
	c := Check{url: url}
	for _, opt := range opts {
		opt(&c)
	}
	s.targets = append(s.targets, c)
	return s
}

// UseMethod sets the fallback HTTP method for targets that do not override it.
func (s *CheckSet) UseMethod(method string) *CheckSet {
	s.defaults.method = method
	return s
}

// UseTimeout sets the fallback request timeout.
func (s *CheckSet) UseTimeout(d time.Duration) *CheckSet {
	s.defaults.timeout = d
	s.defaults.timeoutSet = true
	return s
}

// ExpectStatus sets the fallback expectation to exactly one status code.
func (s *CheckSet) ExpectStatus(code int) *CheckSet {
	return s.ExpectStatusRange(code, code)
}

// ExpectStatusRange sets the fallback expected status range (inclusive).
func (s *CheckSet) ExpectStatusRange(min, max int) *CheckSet {
	s.defaults.status = &StatusRange{Min: min, Max: max}
	return s
}

// ExpectContent sets the fallback literal body expectation.
func (s *CheckSet) ExpectContent(content string) *CheckSet {
	s.defaults.content = &content
	return s
}

// ExpectValidator sets the fallback programmable body validator.
func (s *CheckSet) ExpectValidator(fn ValidatorFunc) *CheckSet {
	s.defaults.validator = fn
	return s
}

// Len reports the number of targets.
func (s *CheckSet) Len() int { return len(s.targets) }

// Resolved is the effective view of one target after layering its own
// settings over the check-wide defaults. Content holds zero, one, or two
// checks: the literal match first, then the programmable validator.
type Resolved struct {
	URL     string
	Method  string
	Timeout time.Duration
	Status  StatusRange
	Headers []Header
	Content []ContentCheck
}

// Target resolves the i-th target. Resolution is field-by-field: the
// target's explicit value when present, else the set default, else the
// package default.
func (s *CheckSet) Target(i int) Resolved {
	c := &s.targets[i]
	r := Resolved{
		URL:     c.url,
		Method:  DefaultMethod,
		Timeout: DefaultTimeout,
		Status:  DefaultStatusRange,
		Headers: c.headers,
	}

	switch {
	case c.method != "":
		r.Method = c.method
	case s.defaults.method != "":
		r.Method = s.defaults.method
	}

	switch {
	case c.timeoutSet:
		r.Timeout = c.timeout
	case s.defaults.timeoutSet:
		r.Timeout = s.defaults.timeout
	}

	switch {
	case c.status != nil:
		r.Status = *c.status
	case s.defaults.status != nil:
		r.Status = *s.defaults.status
	}

	content := c.content
	if content == nil {
		content = s.defaults.content
	}
	if content != nil {
		r.Content = append(r.Content, literalMatch(*content))
	}

	validator := c.validator
	if validator == nil {
		validator = s.defaults.validator
	}
	if validator != nil {
		r.Content = append(r.Content, validator)
	}

	return r
}
