package models

import "fmt"

// ProviderCallError is a network or HTTP failure calling an AI provider.
// Callers treat it as transient: it is absorbed at the orchestration
// boundary, never surfaced to end users.
type ProviderCallError struct {
	Provider string
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error { return e.Err }

// ParseError means a provider response contained no extractable JSON.
type ParseError struct {
	Provider string
	Hint     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %s response is not parseable JSON: %s", e.Provider, e.Hint)
}

// ValidationShapeError means parsed provider JSON is missing a required
// field.
type ValidationShapeError struct {
	Provider string
	Field    string
}

func (e *ValidationShapeError) Error() string {
	return fmt.Sprintf("provider %s response missing required field %q", e.Provider, e.Field)
}

// NotFoundError indicates an unknown user or idea id. Unlike provider
// errors it propagates to the caller (maps to a 404 at the HTTP layer).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConfigurationError indicates required credentials or settings are
// absent at construction time. Operator error; propagates.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Reason)
}
