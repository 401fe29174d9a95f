// file: internals/helpers/pg_error.go
package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// pgCode extracts the SQLSTATE from pgx or lib/pq errors.
func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return err != nil && pgCode(err) == "23505"
}

// MapPGError → (status, message)
// 23505 unique_violation, 23503 foreign_key_violation, 23514 check_violation
func MapPGError(err error) (int, string) {
	switch pgCode(err) {
	case "23505":
		return http.StatusConflict, "Duplicate data (unique violation)."
	case "23503":
		return http.StatusBadRequest, "Referenced row not found (FK violation)."
	case "23514":
		return http.StatusBadRequest, "Value rejected by check constraint."
	}
	return http.StatusInternalServerError, err.Error()
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
