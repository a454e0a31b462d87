package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// HeaderIngestKey carries the shared secret backends use to push log lines.
const HeaderIngestKey = "X-Ingest-Key"

// RequireIngestKey returns middleware that checks the X-Ingest-Key header
// against keyHash, a bcrypt hash of the shared key. An empty keyHash
// disables the check; config.Load refuses that in production.
func RequireIngestKey(keyHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if keyHash == "" {
			return next
		}
		hash := []byte(keyHash)

		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIngestKey)
			if key == "" {
				return apperror.NewUnauthorized("missing ingest key")
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
				return apperror.NewUnauthorized("invalid ingest key")
			}
			return next(c)
		}
	}
}
