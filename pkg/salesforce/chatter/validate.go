package chatter

import (
	"strings"

	"github.com/natserract/sfchatter/pkg/salesforce"
)

const missingValuesPrefix = "The following values must be passed: "

// ValidationResult is the outcome of checking an argument set against the
// fields an operation requires.
type ValidationResult struct {
	Failed  bool
	Message string
}

// Validate reports whether every name in required is a key of args. Only key
// presence is checked; the values are not inspected. The failure message
// lists the whole required set, whichever fields are missing.
func Validate(args salesforce.Args, required []string) ValidationResult {
	for _, field := range required {
		if _, ok := args[field]; !ok {
			return ValidationResult{
				Failed:  true,
				Message: missingValuesPrefix + strings.Join(required, ", "),
			}
		}
	}
	return ValidationResult{Message: "No errors"}
}

// ValidationError is passed to the callback, and returned, when an operation
// is called without its required fields.
type ValidationError struct {
	Operation string
	Required  []string
}

func (e *ValidationError) Error() string {
	return missingValuesPrefix + strings.Join(e.Required, ", ")
}
