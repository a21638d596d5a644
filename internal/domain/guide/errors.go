package guide

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeFlowNotFound     = "FLOW_NOT_FOUND"
	ErrCodeFlowInvalid      = "FLOW_INVALID"
	ErrCodeStepNotFound     = "STEP_NOT_FOUND"
	ErrCodeSnippetNotFound  = "SNIPPET_NOT_FOUND"
	ErrCodeTemplateInvalid  = "TEMPLATE_INVALID"
	ErrCodeFieldUnknown     = "FIELD_UNKNOWN"
	ErrCodeOSInvalid        = "OS_INVALID"
	ErrCodeCatalogParse     = "CATALOG_PARSE"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeClipboardFailure = "CLIPBOARD_FAILURE"
	ErrCodeNotATerminal     = "NOT_A_TERMINAL"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "FLOW_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // Flow id, step number, file path or other location
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code, message string) *UserError {
	return &UserError{Code: code, Message: message}
}

// WithContext returns a copy with context set.
func (e *UserError) WithContext(ctx string) *UserError {
	c := *e
	c.Context = ctx
	return &c
}

// WithSuggestion returns a copy with suggestion set.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a copy wrapping err.
func (e *UserError) WithUnderlying(err error) *UserError {
	c := *e
	c.Underlying = err
	return &c
}

// ErrorList accumulates multiple errors for comprehensive reporting.
type ErrorList struct {
	errors []*UserError
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{errors: make([]*UserError, 0)}
}

// Add adds an error to the list. Nil errors are ignored.
func (l *ErrorList) Add(err *UserError) {
	if err != nil {
		l.errors = append(l.errors, err)
	}
}

// Merge adds every error of other.
func (l *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	l.errors = append(l.errors, other.errors...)
}

// HasErrors returns true if there are any errors.
func (l *ErrorList) HasErrors() bool {
	return len(l.errors) > 0
}

// Len returns the number of errors.
func (l *ErrorList) Len() int {
	return len(l.errors)
}

// Errors returns a copy of the collected errors.
func (l *ErrorList) Errors() []*UserError {
	result := make([]*UserError, len(l.errors))
	copy(result, l.errors)
	return result
}

// Error implements the error interface for ErrorList.
func (l *ErrorList) Error() string {
	switch len(l.errors) {
	case 0:
		return ""
	case 1:
		return l.errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:\n", len(l.errors))
	for i, err := range l.errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Format returns a detailed formatted output of all errors.
func (l *ErrorList) Format() string {
	if len(l.errors) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d error(s):\n", len(l.errors))
	for i, err := range l.errors {
		fmt.Fprintf(&b, "\n--- Error %d ---\n", i+1)
		b.WriteString(err.Format())
		b.WriteString("\n")
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l *ErrorList) Unwrap() []error {
	out := make([]error, len(l.errors))
	for i, err := range l.errors {
		out[i] = err
	}
	return out
}

// AsError returns the ErrorList as an error, or nil if empty.
func (l *ErrorList) AsError() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}

// NewFlowNotFoundError reports an unknown flow id.
func NewFlowNotFoundError(id string, available []string) *UserError {
	suggestion := "Run 'sanaguide list' to see the available guides."
	if len(available) > 0 {
		suggestion = fmt.Sprintf("Available guides: %s", strings.Join(available, ", "))
	}
	return &UserError{
		Code:       ErrCodeFlowNotFound,
		Message:    fmt.Sprintf("guide '%s' not found", id),
		Suggestion: suggestion,
	}
}

// NewStepNotFoundError reports a step number outside the flow.
func NewStepNotFoundError(flowID string, step, total int) *UserError {
	return &UserError{
		Code:       ErrCodeStepNotFound,
		Message:    fmt.Sprintf("step %d does not exist", step),
		Context:    flowID,
		Suggestion: fmt.Sprintf("Choose a step between 1 and %d.", total),
	}
}

// NewSnippetNotFoundError reports an unknown snippet id.
func NewSnippetNotFoundError(flowID, id string, available []string) *UserError {
	e := &UserError{
		Code:    ErrCodeSnippetNotFound,
		Message: fmt.Sprintf("snippet '%s' not found", id),
		Context: flowID,
	}
	if len(available) > 0 {
		e.Suggestion = fmt.Sprintf("Available snippets: %s", strings.Join(available, ", "))
	}
	return e
}

// NewFieldUnknownError reports a reference to an undeclared credential field.
func NewFieldUnknownError(flowID, name string, available []string) *UserError {
	e := &UserError{
		Code:    ErrCodeFieldUnknown,
		Message: fmt.Sprintf("unknown field '%s'", name),
		Context: flowID,
	}
	if len(available) > 0 {
		e.Suggestion = fmt.Sprintf("Known fields: %s", strings.Join(available, ", "))
	}
	return e
}

// NewTemplateInvalidError wraps a template parse or render failure.
func NewTemplateInvalidError(location string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeTemplateInvalid,
		Message:    "snippet template is invalid",
		Context:    location,
		Suggestion: "Reference fields as {{.fieldName}} and declare every field the template uses.",
		Underlying: err,
	}
}

// NewOSInvalidError wraps an unparseable operating system name.
func NewOSInvalidError(value string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeOSInvalid,
		Message:    fmt.Sprintf("unsupported operating system '%s'", value),
		Suggestion: "Use one of: mac, windows, linux.",
		Underlying: err,
	}
}

// NewClipboardError wraps a failed clipboard write.
func NewClipboardError(backend string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeClipboardFailure,
		Message:    "could not copy to the clipboard",
		Context:    fmt.Sprintf("backend: %s", backend),
		Suggestion: "Select the command and copy it manually, or try --clipboard osc52 over SSH.",
		Underlying: err,
	}
}

// NewConfigInvalidError reports a bad configuration value.
func NewConfigInvalidError(key, value string, allowed []string) *UserError {
	e := &UserError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid value '%s' for %s", value, key),
	}
	if len(allowed) > 0 {
		e.Suggestion = fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", "))
	}
	return e
}

// IsUserError checks if an error is a UserError with a specific code.
func IsUserError(err error, code string) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Code == code
	}
	return false
}

// GetUserError extracts a UserError from an error chain, if present.
func GetUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}
