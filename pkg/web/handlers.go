// Package web provides HTTP handlers and REST API endpoints for compiling
// and running block programs.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/engine"
	"github.com/spritelang/spritec/pkg/graph"
	"github.com/spritelang/spritec/pkg/persistence"
)

type APIHandlers struct {
	catalog   blocks.Catalog
	engine    *engine.Engine
	store     persistence.Persistence
	validator *validator.Validate
}

func NewAPIHandlers(
	catalog blocks.Catalog,
	runner *engine.Engine,
	store persistence.Persistence,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		catalog:   catalog,
		engine:    runner,
		store:     store,
		validator: validator,
	}
}

// Compile normalizes, validates, and sequences a graph document without
// running it.
func (h *APIHandlers) Compile(c fiber.Ctx) error {
	var req CompileRequest

	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON payload: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	document, err := graph.Decode(req.Graph, h.catalog)
	if err != nil {
		return handleCompileError(c, err)
	}

	program, err := compiler.Compile(document, h.catalog)
	if err != nil {
		return handleCompileError(c, err)
	}

	return c.JSON(CompileResponse{
		Graph: program.Graph,
		Order: program.Order,
	})
}

// Run compiles a graph document and executes it against a fresh sprite
// context configured by the request options.
func (h *APIHandlers) Run(c fiber.Ctx) error {
	var req RunRequest

	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON payload: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	document, err := graph.Decode(req.Graph, h.catalog)
	if err != nil {
		return handleCompileError(c, err)
	}

	program, err := compiler.Compile(document, h.catalog)
	if err != nil {
		return handleCompileError(c, err)
	}

	sprite := blocks.NewContext()
	if req.Options.Seed != nil {
		sprite.Seed(*req.Options.Seed)
	}

	for _, key := range req.Options.KeysDown {
		sprite.PressKey(key)
	}

	sprite.MouseDown = req.Options.MouseDown

	trace := h.engine.Run(c.Context(), program, sprite)

	if req.Options.Persist && h.store != nil {
		record := &persistence.RunRecord{
			ID:      trace.RunID,
			Name:    req.Options.Name,
			Source:  req.Graph,
			Order:   program.Order,
			Scripts: trace.Scripts,
			Context: trace.Context,
		}

		if err := h.store.SaveRun(c.Context(), record); err != nil {
			return handleStoreError(c, err)
		}
	}

	return c.JSON(RunResponse{
		RunID:   trace.RunID,
		Order:   program.Order,
		Scripts: trace.Scripts,
		Context: trace.Context,
	})
}

// GetCatalog returns the block schema catalog in use.
func (h *APIHandlers) GetCatalog(c fiber.Ctx) error {
	return c.JSON(h.catalog)
}

func (h *APIHandlers) GetRuns(c fiber.Ctx) error {
	records, err := h.store.Runs(c.Context())
	if err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(fiber.Map{
		"runs":        records,
		"total_count": len(records),
	})
}

func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Run ID is required")
	}

	record, err := h.store.RunByID(c.Context(), id)
	if err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(record)
}

func (h *APIHandlers) DeleteRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Run ID is required")
	}

	if err := h.store.DeleteRun(c.Context(), id); err != nil {
		return handleStoreError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Spritec API is healthy"
	httpStatus := http.StatusOK

	storeErr := h.store.HealthCheck(c.Context())
	if storeErr != nil {
		status = "unhealthy"
		message = "Spritec API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"store": storeErr == nil,
		},
		"timestamp": time.Now().UTC(),
	})
}
