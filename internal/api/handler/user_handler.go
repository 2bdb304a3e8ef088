package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stepwise/process-tracker/internal/core/ports"
)

// UserHandler serves the plain user sync endpoints. POST /users stores the
// password exactly as submitted; hashing happens only on the /auth paths.
type UserHandler struct {
	users ports.UserRepository
	query ports.QueryService
}

func NewUserHandler(users ports.UserRepository, query ports.QueryService) *UserHandler {
	return &UserHandler{users: users, query: query}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// List handles GET /users.
//
// @Summary      List all usernames
// @Tags         users
// @Produce      json
// @Success      200  {array}  string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	names, err := h.query.ListUsernames(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Param        body  body  createUserRequest  true  "Credentials"
// @Success      201   "created"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.Insert(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Get handles GET /users/:username — the user with all owned processes,
// each hydrated with steps.
//
// @Summary      Get a user with all owned processes
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.query.GetUserWithProcesses(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
