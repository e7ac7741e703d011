package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SchedulerTokenHeader carries the shared secret of an external cron trigger
const SchedulerTokenHeader = "X-Scheduler-Token"

// SchedulerAuth guards machine-triggered endpoints with a shared token.
// An empty token disables the endpoint.
func SchedulerAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return forbiddenError(c, "Scheduler trigger is disabled")
			}

			provided := c.Request().Header.Get(SchedulerTokenHeader)
			if provided == "" {
				provided, _ = bearerToken(c)
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				log.Warn().Str("client_ip", c.RealIP()).Msg("Rejected scheduler trigger")
				return unauthorizedError(c, "Invalid scheduler token")
			}
			return next(c)
		}
	}
}
