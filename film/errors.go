package film

import (
	"errors"
	"fmt"
)

// Each pipeline stage fails with exactly one of these. Match with errors.Is,
// the underlying SDK or driver error stays reachable through errors.As.
var (
	ErrConfigUnavailable = errors.New("config unavailable")
	ErrSecretUnavailable = errors.New("secret unavailable")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrQueryFailed       = errors.New("query failed")
	ErrEnrichmentFailed  = errors.New("enrichment failed")
	ErrPersistFailed     = errors.New("persist failed")

	ErrMissingColumn = errors.New("missing column")
)

type StageError struct {
	Kind    error
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *StageError) Is(target error) bool {
	return target == e.Kind
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(kind error, err error, format string, args ...interface{}) error {
	return &StageError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// PersistError reports how far a persist got before the first failed write.
// Films after the failed one were never attempted.
type PersistError struct {
	Written int
	FilmID  int64
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: put film %d after %d written: %v", ErrPersistFailed, e.FilmID, e.Written, e.Err)
}

func (e *PersistError) Is(target error) bool {
	return target == ErrPersistFailed
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
