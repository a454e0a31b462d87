package middleware

import (
	"log/slog"
	"net"

	"github.com/labstack/echo/v4"
)

// TrustedProxies configures c.RealIP() to honour X-Forwarded-For only when
// the direct peer falls inside one of trustedCIDRs. Backends call the ingest
// endpoint through the cluster ingress, so without this every request would
// share the ingress IP and the per-IP rate limit would be global.
//
// Echo's own loopback/private-range defaults are switched off: only the
// listed ranges are trusted. Invalid CIDRs are logged and skipped.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy CIDR",
				slog.String("cidr", cidr),
				slog.Any("error", err),
			)
			continue
		}
		opts = append(opts, echo.TrustIPRange(network))
	}
	e.IPExtractor = echo.ExtractIPFromXFFHeader(opts...)
}
