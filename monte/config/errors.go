package config

import "strings"

// ConfigError is one configuration mistake, tagged with the field path that
// caused it (e.g. "convergence/2/component_name").
type ConfigError struct {
	Path    string
	Message string
}

func (e ConfigError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ConfigErrors aggregates every ConfigError found while validating a
// record, so a host can report all of them at once instead of fixing one
// typo per run.
type ConfigErrors []ConfigError

func (e ConfigErrors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// AsError returns e as an error, or nil if e is empty — the usual shape for
// a Validate method to return.
func (e ConfigErrors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
