package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"quizadmin/docs"
	"quizadmin/internal/config"
	"quizadmin/internal/handler"
	"quizadmin/internal/session"
	"quizadmin/internal/validation"
)

// LoginPath is where the guard sends anonymous operators.
const LoginPath = "/login"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	store *session.Store,
	authHandler *handler.AuthHandler,
	resourceHandler *handler.ResourceHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validation.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public routes
	e.GET(LoginPath, authHandler.LoginPage)
	e.POST(LoginPath, authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// Screens require a session
	secured := e.Group("", RequireSession(store))

	secured.GET("/:resource", resourceHandler.List)
	secured.POST("/:resource", resourceHandler.Create)
	secured.GET("/:resource/form", resourceHandler.Form)
	secured.DELETE("/:resource/form", resourceHandler.CancelForm)
	secured.PUT("/:resource/:id", resourceHandler.Update)
	secured.DELETE("/:resource/:id", resourceHandler.Delete)
}

// RequireSession redirects to the login screen when no usable token is held.
func RequireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.Authenticated() {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
