package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	empapp "github.com/mohammadpnp/backoffice-import/internal/application/employee"
	"github.com/mohammadpnp/backoffice-import/internal/config"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/backoffice-import/internal/interfaces/http/echo"
)

func NewHTTPServer(cfg *config.Config, deps ImportDeps) (*echo.Echo, error) {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(bodyLimit(cfg.Import.MaxFileBytes)))
	server.Use(httpecho.RequestLogger(deps.Logger))

	useCases, err := NewImportUseCases(deps)
	if err != nil {
		return nil, err
	}
	importHandler := httpecho.NewImportHandler(useCases, cfg.Import.MaxFileBytes, deps.Logger.WithField("component", "http"))
	getEmployee := empapp.NewGetEmployeeByCPF(repository.NewEmployeeQueryRepository(deps.DB))
	employeeHandler := httpecho.NewEmployeeHandler(getEmployee)

	httpecho.RegisterRoutes(server, importHandler, employeeHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		server.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}

	deps.Logger.WithFields(logrus.Fields{
		"session_storage": cfg.Session.Storage,
		"metrics":         cfg.Metrics.Enabled,
	}).Debug("http.server_configured")
	return server, nil
}

// bodyLimit leaves room for the multipart envelope around the file.
func bodyLimit(maxFileBytes int64) string {
	kb := maxFileBytes/1024 + 64
	return fmt.Sprintf("%dK", kb)
}
