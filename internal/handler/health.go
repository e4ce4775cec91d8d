package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers. It reports
// only that the gateway process is up, not that the upstream is.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
