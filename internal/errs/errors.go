// Package errs defines the structured error sum type shared by every
// logos subsystem, per the fixed code set of the reasoning service's
// error-handling design: parse errors abort immediately, clausification
// errors abort the current call, engine errors may trigger a one-shot
// fallback in the manager, and timeouts are never masked as failures.
package errs

import "fmt"

// Code is one of the fixed error codes the service can report.
type Code string

const (
	CodeParseError            Code = "ParseError"
	CodeClausificationError   Code = "ClausificationError"
	CodeClausificationBlowup  Code = "ClausificationBlowup"
	CodeInferenceLimit        Code = "InferenceLimit"
	CodeTimeout               Code = "Timeout"
	CodeNoModel               Code = "NoModel"
	CodeInvalidDomain         Code = "InvalidDomain"
	CodeSessionNotFound       Code = "SessionNotFound"
	CodeSessionLimit          Code = "SessionLimit"
	CodeEngineError           Code = "EngineError"
	CodeInvalidPredicate      Code = "InvalidPredicate"
	CodeMathError             Code = "MathError"
	CodeUnsatisfiable         Code = "Unsatisfiable"
)

// Span locates an error in the original source text.
type Span struct {
	Start int
	End   int
	Line  int
	Col   int
}

// Error is the structured error type returned at every public boundary.
// Internal packages may use sentinel errors for control flow, but no
// sentinel ever escapes a public function signature un-wrapped.
type Error struct {
	Code       Code
	Message    string
	Span       *Span
	Suggestion string
	Context    string
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Span != nil {
		return fmt.Sprintf("%s: %s (line %d, col %d)", e.Code, e.Message, e.Span.Line, e.Span.Col)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithSpan returns a copy of e with span attached.
func (e *Error) WithSpan(span Span) *Error {
	c := *e
	c.Span = &span
	return &c
}

// WithSuggestion returns a copy of e with a suggestion attached.
func (e *Error) WithSuggestion(s string) *Error {
	c := *e
	c.Suggestion = s
	return &c
}

// WithContext returns a copy of e with the offending formula attached.
func (e *Error) WithContext(ctx string) *Error {
	c := *e
	c.Context = ctx
	return &c
}

// WithDetail sets a single entry in the Details map, allocating it if nil.
func (e *Error) WithDetail(key string, value any) *Error {
	c := *e
	d := make(map[string]any, len(c.Details)+1)
	for k, v := range c.Details {
		d[k] = v
	}
	d[key] = value
	c.Details = d
	return &c
}

// As reports whether err is a *Error with the given code.
func As(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
