package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stepwise/process-tracker/internal/core/ports"
)

// DeletedHandler serves the tombstone reconciliation endpoints offline
// clients use to mirror deletions locally.
type DeletedHandler struct {
	sync  ports.SyncService
	query ports.QueryService
}

func NewDeletedHandler(sync ports.SyncService, query ports.QueryService) *DeletedHandler {
	return &DeletedHandler{sync: sync, query: query}
}

// List handles GET /processes/deleted — the full tombstone dump.
//
// @Summary      List all deleted process ids
// @Tags         deleted
// @Produce      json
// @Success      200  {array}  string
// @Router       /processes/deleted [get]
func (h *DeletedHandler) List(c echo.Context) error {
	ids, err := h.query.GetDeletedIDs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ids)
}

// DeleteBatch handles POST /processes/deleted — bulk delete; each id gets
// its own outcome and repeat deletes are no-ops.
//
// @Summary      Delete a batch of processes
// @Tags         deleted
// @Accept       json
// @Produce      json
// @Param        body  body  []string  true  "Process ids"
// @Success      200   {array}  ports.BatchOutcome
// @Failure      400   {object}  map[string]string
// @Router       /processes/deleted [post]
func (h *DeletedHandler) DeleteBatch(c echo.Context) error {
	var ids []string
	if err := c.Bind(&ids); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcomes := h.sync.DeleteProcesses(c.Request().Context(), ids)
	return c.JSON(http.StatusOK, outcomes)
}

// IsDeleted handles GET /processes/deleted/:id.
//
// @Summary      Check whether a process id is tombstoned
// @Tags         deleted
// @Produce      json
// @Param        id  path  string  true  "Process id"
// @Success      200  {object}  deletedStatusResponse
// @Router       /processes/deleted/{id} [get]
func (h *DeletedHandler) IsDeleted(c echo.Context) error {
	id := c.Param("id")
	deleted, err := h.query.IsDeleted(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedStatusResponse{ID: id, IsDeleted: deleted})
}
