package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

func NewRouter() *echo.Echo {
	handler := echo.New()
	handler.HideBanner = true
	handler.HidePort = true
	ConfigureRouter(handler)
	return handler
}

func ConfigureRouter(handler *echo.Echo) {
	handler.GET("/metrics", echoprometheus.NewHandler())
}
