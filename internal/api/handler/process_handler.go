package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stepwise/process-tracker/internal/core/domain"
	"github.com/stepwise/process-tracker/internal/core/ports"
)

// ProcessHandler handles HTTP requests for process sync and reads.
type ProcessHandler struct {
	sync  ports.SyncService
	query ports.QueryService
}

func NewProcessHandler(sync ports.SyncService, query ports.QueryService) *ProcessHandler {
	return &ProcessHandler{sync: sync, query: query}
}

// Get handles GET /processes/:id.
//
// @Summary      Get a process by id
// @Tags         processes
// @Produce      json
// @Param        id          path   string  true   "Process id"
// @Param        with_steps  query  bool    false  "Include the process steps"
// @Success      200  {object}  domain.Process
// @Failure      404  {object}  map[string]string
// @Router       /processes/{id} [get]
func (h *ProcessHandler) Get(c echo.Context) error {
	withSteps := c.QueryParam("with_steps") == "true"

	p, err := h.query.GetProcess(c.Request().Context(), c.Param("id"), withSteps)
	if err != nil {
		return err
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "process not found")
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /processes?owner= — the upsert-if-newer sync path.
// Resubmitting an id with an older editAt succeeds without persisting.
//
// @Summary      Create or upsert a process
// @Tags         processes
// @Accept       json
// @Produce      json
// @Param        owner  query  string          true  "Owning username"
// @Param        body   body   processRequest  true  "Process with embedded steps"
// @Success      201    {object}  domain.Process
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /processes [post]
func (h *ProcessHandler) Create(c echo.Context) error {
	owner, err := requiredOwner(c)
	if err != nil {
		return err
	}

	var req processRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := req.toDomain()
	if err := h.sync.CreateProcess(c.Request().Context(), p, owner); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// CreateBatch handles POST /processes/batch?owner= — each element is
// processed independently and gets its own outcome.
//
// @Summary      Create or upsert a batch of processes
// @Tags         processes
// @Accept       json
// @Produce      json
// @Param        owner  query  string            true  "Owning username"
// @Param        body   body   []processRequest  true  "Processes with embedded steps"
// @Success      200    {array}  ports.BatchOutcome
// @Failure      400    {object}  map[string]string
// @Router       /processes/batch [post]
func (h *ProcessHandler) CreateBatch(c echo.Context) error {
	owner, err := requiredOwner(c)
	if err != nil {
		return err
	}

	var reqs []processRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	processes := make([]domain.Process, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		processes = append(processes, *reqs[i].toDomain())
	}

	outcomes := h.sync.CreateProcesses(c.Request().Context(), processes, owner)
	return c.JSON(http.StatusOK, outcomes)
}

// Update handles PUT /processes?owner= — conditional update only. A stale
// or unknown id matches zero rows and the call still succeeds.
//
// @Summary      Update a process if the submitted editAt is newer
// @Tags         processes
// @Accept       json
// @Produce      json
// @Param        owner  query  string          true  "Owning username"
// @Param        body   body   processRequest  true  "Process"
// @Success      204    "applied or silently discarded"
// @Failure      400    {object}  map[string]string
// @Router       /processes [put]
func (h *ProcessHandler) Update(c echo.Context) error {
	owner, err := requiredOwner(c)
	if err != nil {
		return err
	}

	var req processRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sync.UpdateProcess(c.Request().Context(), req.toDomain(), owner); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /processes/:id. Safe to retry.
//
// @Summary      Delete a process and tombstone its id
// @Tags         processes
// @Param        id  path  string  true  "Process id"
// @Success      204  "deleted (idempotent)"
// @Router       /processes/{id} [delete]
func (h *ProcessHandler) Delete(c echo.Context) error {
	if err := h.sync.DeleteProcess(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// LastUpdates handles GET /processes/last_updates?owner= — the lightweight
// sync poll target.
//
// @Summary      List (id, editAt) pairs for an owner's processes
// @Tags         processes
// @Produce      json
// @Param        owner  query  string  true  "Owning username"
// @Success      200    {array}  domain.EditSummary
// @Failure      400    {object}  map[string]string
// @Router       /processes/last_updates [get]
func (h *ProcessHandler) LastUpdates(c echo.Context) error {
	owner, err := requiredOwner(c)
	if err != nil {
		return err
	}

	summaries, err := h.query.GetEditSummary(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetSteps handles GET /processes/:id/steps. An unknown process yields an
// empty list, not an error.
//
// @Summary      List the steps of a process
// @Tags         steps
// @Produce      json
// @Param        id  path  string  true  "Process id"
// @Success      200  {array}  domain.Step
// @Router       /processes/{id}/steps [get]
func (h *ProcessHandler) GetSteps(c echo.Context) error {
	steps, err := h.query.GetSteps(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, steps)
}

// UpdateSteps handles PUT /processes/:id/steps — unconditional overwrite of
// each submitted step, repointed to the path process.
//
// @Summary      Bulk-update steps of a process
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Process id"
// @Param        body  body  []stepRequest  true  "Steps"
// @Success      200   {array}  ports.BatchOutcome
// @Failure      400   {object}  map[string]string
// @Router       /processes/{id}/steps [put]
func (h *ProcessHandler) UpdateSteps(c echo.Context) error {
	var reqs []stepRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	steps := make([]domain.Step, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		steps = append(steps, reqs[i].toDomain())
	}

	outcomes := h.sync.UpdateSteps(c.Request().Context(), c.Param("id"), steps)
	return c.JSON(http.StatusOK, outcomes)
}

// DeleteSteps handles DELETE /processes/steps — bulk delete by step ids.
//
// @Summary      Delete steps by id
// @Tags         steps
// @Accept       json
// @Param        body  body  idListRequest  true  "Step ids"
// @Success      204   "deleted"
// @Failure      400   {object}  map[string]string
// @Router       /processes/steps [delete]
func (h *ProcessHandler) DeleteSteps(c echo.Context) error {
	var req idListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sync.DeleteSteps(c.Request().Context(), req.IDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func requiredOwner(c echo.Context) (string, error) {
	owner := c.QueryParam("owner")
	if owner == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "owner is required")
	}
	return owner, nil
}
