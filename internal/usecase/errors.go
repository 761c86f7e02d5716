package usecase

import (
	"errors"

	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
)

var (
	ErrInvalidTenure     = errors.New("tenure must be at least one month")
	ErrNegativePrincipal = errors.New("principal must not be negative")
	ErrIncompleteAnswers = errors.New("risk questionnaire incomplete")
	ErrTooFewFunds       = errors.New("select at least 2 funds")
	ErrStepOutOfOrder    = errors.New("step submitted out of order")
	ErrMissingInfo       = errors.New("missing information")
)

// sessionError maps session store failures onto API errors.
func sessionError(kind string, err error) error {
	switch {
	case errors.Is(err, domrepo.ErrSessionNotFound):
		return xhttp.NotFoundErrorf("%s session not found or expired", kind).WithError(err)
	case errors.Is(err, domrepo.ErrSessionBusy):
		return xhttp.ConflictError("session is being updated, retry shortly").WithError(err)
	}
	return err
}

func notFound(what, id string, err error) error {
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.NotFoundErrorf("%s %q not found", what, id).WithError(err)
	}
	return err
}
