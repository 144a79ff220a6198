package contract

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrProviderFault = errors.New("provider fault")
	ErrAggregation   = errors.New("consensus aggregation failed")
	ErrPromptMissing = errors.New("required prompt is missing")
)

type FaultKind string

const (
	FaultTimeout           FaultKind = "timeout"
	FaultAuth              FaultKind = "auth"
	FaultRateLimit         FaultKind = "rate_limit"
	FaultMalformedResponse FaultKind = "malformed_response"
	FaultUpstream          FaultKind = "upstream"
	FaultAggregation       FaultKind = "aggregation"
	FaultCanceled          FaultKind = "canceled"
)

// ProviderFault is a failed completion call, classified by kind.
type ProviderFault struct {
	Provider string
	Kind     FaultKind
	Err      error
}

func (f *ProviderFault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("provider %s: %s", f.Provider, f.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", f.Provider, f.Kind, f.Err)
}

func (f *ProviderFault) Unwrap() error {
	return f.Err
}

func (f *ProviderFault) Is(target error) bool {
	return target == ErrProviderFault
}

// StageError names the pipeline stage that aborted a run. Partial holds the
// responses appended before the failing stage.
type StageError struct {
	Stage   int
	Role    Role
	Kind    FaultKind
	Err     error
	Partial []AgentResponse
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed with %s: %v", e.Stage, e.Role, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError tags err with the failing role and infers the fault kind.
func NewStageError(role Role, err error, partial []AgentResponse) *StageError {
	return &StageError{
		Stage:   role.Rank(),
		Role:    role,
		Kind:    KindOf(err),
		Err:     err,
		Partial: partial,
	}
}

// KindOf reports the fault kind carried by err.
func KindOf(err error) FaultKind {
	var fault *ProviderFault
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fault):
		return fault.Kind
	case errors.Is(err, ErrAggregation):
		return FaultAggregation
	default:
		return FaultUpstream
	}
}
