package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ellucho77/HerbaBeauty/internal/catalog"
)

// ListServices handles GET /v1/services. The catalog is static, so this is
// the one response worth putting behind the Redis cache middleware.
func ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"services": catalog.Services()})
}
