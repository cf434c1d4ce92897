package service

import "errors"

// Sentinel errors shared across the evaluation workflow services. Handlers
// translate these into the stable error kinds of the response envelope.
var (
	// ErrTeamNotFound indicates the referenced team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrFacultyNotFound indicates the referenced faculty profile does not exist.
	ErrFacultyNotFound = errors.New("faculty not found")
	// ErrEvaluatorNotFound indicates the referenced evaluator does not exist.
	ErrEvaluatorNotFound = errors.New("evaluator not found")
	// ErrEvaluationNotFound indicates the referenced evaluation does not exist.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrUserNotFound indicates the referenced user account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotAssigned is returned when an evaluator submits for a team outside
	// their assigned set.
	ErrNotAssigned = errors.New("evaluator is not assigned to this team")
	// ErrNotOwner is returned when an evaluator touches an evaluation they did
	// not author.
	ErrNotOwner = errors.New("evaluation belongs to a different evaluator")
	// ErrScoreOutOfRange is returned when a criterion score falls outside the
	// configured range.
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrUnknownCriterion is returned when a submitted score names a criterion
	// that is not declared.
	ErrUnknownCriterion = errors.New("unknown criterion")
	// ErrMissingCriterion is returned when a declared criterion has no score.
	ErrMissingCriterion = errors.New("missing criterion score")
	// ErrDuplicateAccount is returned on unique-constraint violations in the
	// directory store.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned when login verification fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
