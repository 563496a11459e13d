package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Nombres de constraints únicos definidos en migrations/.
const (
	constraintUsersEmail = "users_email_key"
	constraintOrgsSlug   = "organizations_slug_key"
)

// uniqueViolation informa si err es una violación de constraint único (23505) y sobre cuál.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// validID informa si id puede compararse contra una columna UUID. Postgres rechaza el cast
// con 22P02; un id mal formado es simplemente un registro que no existe.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
