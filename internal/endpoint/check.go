package endpoint

import (
	"fmt"
	"net/http"
	"time"
)

// Check-wide fallbacks used when neither a target nor the set overrides them.
const (
	DefaultMethod  = http.MethodGet
	DefaultTimeout = 10 * time.Second
)

// DefaultStatusRange accepts any 2xx response.
var DefaultStatusRange = StatusRange{Min: 200, Max: 299}

// StatusRange is an inclusive range of acceptable HTTP status codes.
// A single expected code is the degenerate case Min == Max.
type StatusRange struct {
	Min int
	Max int
}

func (r StatusRange) Contains(code int) bool {
	return code >= r.Min && code <= r.Max
}

func (r StatusRange) String() string {
	return fmt.Sprintf("%d...%d", r.Min, r.Max)
}

// Header is one outgoing request header. Headers are attached verbatim in
// declaration order; duplicate names are allowed and never merged.
type Header struct {
	Name  string
	Value string
}

// Check describes one monitored endpoint. Zero values on the overridable
// fields mean "use the check-wide default"; the timeout carries an explicit
// set flag so a literal zero-duration override stays distinguishable from
// "unset".
type Check struct {
	url        string
	method     string
	timeout    time.Duration
	timeoutSet bool
	status     *StatusRange
	content    *string
	validator  ValidatorFunc
	headers    []Header
}

// URL returns the target URL the check was created with.
func (c *Check) URL() string { return c.url }

// TargetOption configures a single target added via AddTarget.
type TargetOption func(*Check)

// WithMethod overrides the HTTP method for this target only.
func WithMethod(method string) TargetOption {
	return func(c *Check) { c.method = method }
}

// WithTimeout overrides the request timeout for this target only.
func WithTimeout(d time.Duration) TargetOption {
	return func(c *Check) {
		c.timeout = d
		c.timeoutSet = true
	}
}

// WithExpectedStatus expects exactly one status code from this target.
func WithExpectedStatus(code int) TargetOption {
	return WithExpectedStatusRange(code, code)
}

// WithExpectedStatusRange expects a status code in the inclusive range
// [min, max] from this target.
func WithExpectedStatusRange(min, max int) TargetOption {
	return func(c *Check) { c.status = &StatusRange{Min: min, Max: max} }
}

// WithExpectedContent expects the response body to equal content exactly.
func WithExpectedContent(content string) TargetOption {
	return func(c *Check) { c.content = &content }
}

// WithValidator attaches a programmable body validator to this target.
// It is applied independently of any literal content expectation.
func WithValidator(fn ValidatorFunc) TargetOption {
	return func(c *Check) { c.validator = fn }
}

// WithHeader appends one outgoing request header. May be used repeatedly,
// including with the same name.
func WithHeader(name, value string) TargetOption {
	return func(c *Check) { c.headers = append(c.headers, Header{Name: name, Value: value}) }
}
