package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// Constraint names declared by the schema migrations
const (
	ConstraintUsersEmail       = "users_email_key"
	ConstraintVotesUserPoll    = "votes_user_poll_key"
	ConstraintReviewsCollegeFK = "reviews_college_id_fkey"
	ConstraintReviewsDeptFK    = "reviews_department_id_fkey"
	ConstraintReviewsUserFK    = "reviews_user_id_fkey"
	ConstraintCommentsReviewFK = "comments_review_id_fkey"
	ConstraintCommentsUserFK   = "comments_user_id_fkey"
)

// IsUniqueViolation reports a unique violation on any constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError reports a foreign key violation on the named constraint,
// or on any constraint when constraintName is empty.
func IsForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeForeignKeyViolation {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
