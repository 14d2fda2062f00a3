package handler

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"quizadmin/internal/console"
	"quizadmin/internal/errors"
)

// ResourceHandler serves the list screens under /:resource.
type ResourceHandler struct {
	console *console.Console
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(c *console.Console) *ResourceHandler {
	return &ResourceHandler{console: c}
}

// SaveResponse is returned by create and edit.
type SaveResponse struct {
	// Aborted is set when a required field was blank; nothing was sent.
	Aborted bool `json:"aborted"`
	Form    any  `json:"form"`
}

// List godoc
// @Summary Show a list screen
// @Description page moves to a page, search filters and resets to page 1, sort toggles a column.
// @Tags screens
// @Produce json
// @Param resource path string true "nodes, assessments, questions, answers, attempts or users"
// @Param page query int false "1-based page"
// @Param search query string false "search text"
// @Param sort query string false "column to toggle"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{resource} [get]
func (h *ResourceHandler) List(c echo.Context) error {
	screen, err := h.console.Screen(c.Param("resource"))
	if err != nil {
		return fail(err)
	}

	var params console.Params
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "page must be a number",
				Code:  "INVALID_PAGE",
			})
		}
		params.Page = page
	}
	if _, ok := c.QueryParams()["search"]; ok {
		search := c.QueryParam("search")
		params.Search = &search
	}
	params.Sort = c.QueryParam("sort")

	view, err := screen.Show(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a record optimistically
// @Tags screens
// @Produce json
// @Param resource path string true "resource"
// @Param id path string true "record id"
// @Param confirm query bool true "must be true"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	screen, err := h.console.Screen(c.Param("resource"))
	if err != nil {
		return fail(err)
	}
	if confirmed, _ := strconv.ParseBool(c.QueryParam("confirm")); !confirmed {
		return fail(errors.ErrConfirmationRequired)
	}

	view, err := screen.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Form godoc
// @Summary Open the create or edit form
// @Tags screens
// @Produce json
// @Param resource path string true "resource"
// @Param id query string false "record to edit; omit to create"
// @Success 200 {object} map[string]interface{}
// @Failure 405 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /{resource}/form [get]
func (h *ResourceHandler) Form(c echo.Context) error {
	editor, err := h.editor(c)
	if err != nil {
		return fail(err)
	}
	view, err := editor.Open(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

// CancelForm godoc
// @Summary Close the form
// @Tags screens
// @Produce json
// @Param resource path string true "resource"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Router /{resource}/form [delete]
func (h *ResourceHandler) CancelForm(c echo.Context) error {
	editor, err := h.editor(c)
	if err != nil {
		return fail(err)
	}
	if err := editor.Cancel(); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, editor.View())
}

// Create godoc
// @Summary Create a record through the form
// @Tags screens
// @Accept json
// @Produce json
// @Param resource path string true "resource"
// @Success 200 {object} SaveResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 405 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /{resource} [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	return h.save(c, "")
}

// Update godoc
// @Summary Edit a record through the form
// @Tags screens
// @Accept json
// @Produce json
// @Param resource path string true "resource"
// @Param id path string true "record id"
// @Success 200 {object} SaveResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /{resource}/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	return h.save(c, c.Param("id"))
}

func (h *ResourceHandler) save(c echo.Context, id string) error {
	editor, err := h.editor(c)
	if err != nil {
		return fail(err)
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	view, err := editor.Save(c.Request().Context(), id, body)
	if stderrors.Is(err, errors.ErrFormAborted) {
		return c.JSON(http.StatusOK, SaveResponse{Aborted: true, Form: view})
	}
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SaveResponse{Form: view})
}

func (h *ResourceHandler) editor(c echo.Context) (console.Editor, error) {
	screen, err := h.console.Screen(c.Param("resource"))
	if err != nil {
		return nil, err
	}
	editor := screen.Editor()
	if editor == nil {
		return nil, errors.ErrNotSupported
	}
	return editor, nil
}
