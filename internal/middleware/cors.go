package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// APICORS returns CORS middleware for the read endpoints under /api/v1.
// The dashboard served from BASE_URL may run on a different origin than
// this service; it only ever reads, so only GET is allowed and no
// credentials are shared. The ingest endpoint is called server to server
// and never needs CORS.
func APICORS(allowedOrigins []string) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       3600,
	})
}
