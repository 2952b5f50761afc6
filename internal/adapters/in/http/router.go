package http

import (
	"log/slog"
	"net/http"

	"callcenter/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// NewRouter builds the echo instance serving the API, its docs under
// /swagger/ and the /health probe.
func NewRouter(si servers.ServerInterface, serviceName string, logger *slog.Logger) (*echo.Echo, error) {
	if err := servers.RegisterSwaggerDoc(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware(serviceName))
	e.Use(RequestLogging(logger.With("component", "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, si)

	return e, nil
}
