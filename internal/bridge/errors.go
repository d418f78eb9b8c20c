package bridge

import "strings"

// ConversionError reports a term that the strict number policy refused.
type ConversionError struct {
	// Path holds the object keys and sequence indexes leading to the term.
	Path   []string
	Detail string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString("conversion failed")
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}
