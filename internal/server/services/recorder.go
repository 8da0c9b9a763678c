package services

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/common"
)

// Outcome labels reported to a Recorder.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeMalformed          = "malformed"
	OutcomeInvalidSignature   = "invalid_signature"
	OutcomeExpired            = "expired"
	OutcomeNotFound           = "not_found"
	OutcomeError              = "error"
)

// Recorder receives per-operation outcomes and hashing latency.
type Recorder interface {
	ObserveRegister(outcome string)
	ObserveLogin(outcome string)
	ObserveVerify(outcome string)
	ObserveProfile(outcome string)
	ObserveHash(d time.Duration)
}

// NopRecorder drops everything.
type NopRecorder struct{}

func (NopRecorder) ObserveRegister(string)    {}
func (NopRecorder) ObserveLogin(string)       {}
func (NopRecorder) ObserveVerify(string)      {}
func (NopRecorder) ObserveProfile(string)     {}
func (NopRecorder) ObserveHash(time.Duration) {}

// Outcome maps a service error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, common.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, common.ErrDuplicateAccount):
		return OutcomeDuplicate
	case errors.Is(err, common.ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, common.ErrMalformedToken):
		return OutcomeMalformed
	case errors.Is(err, common.ErrInvalidSignature):
		return OutcomeInvalidSignature
	case errors.Is(err, common.ErrTokenExpired):
		return OutcomeExpired
	case errors.Is(err, common.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
