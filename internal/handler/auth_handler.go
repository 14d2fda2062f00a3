package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quizadmin/internal/console"
	"quizadmin/internal/errors"
	"quizadmin/internal/model"
)

// AuthHandler handles the operator session endpoints.
type AuthHandler struct {
	console *console.Console
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(c *console.Console) *AuthHandler {
	return &AuthHandler{console: c}
}

// LoginPage godoc
// @Summary Show the login screen state
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.console.Session().State())
}

// Login godoc
// @Summary Log in against the quiz backend
// @Tags session
// @Accept json
// @Produce json
// @Param request body model.Credentials true "Login credentials"
// @Success 200 {object} session.State
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	state, err := h.console.Login(c.Request().Context(), req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, state)
}

// Logout godoc
// @Summary End the session
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.console.Logout(c.Request().Context()))
}

// Session godoc
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.console.Session().State())
}

// fail converts err into the JSON error response.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
