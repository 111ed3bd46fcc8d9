package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/graph"
	"github.com/spritelang/spritec/pkg/persistence"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleCompileError maps the compilation error taxonomy onto problem
// responses. Malformed documents are 400s; well-formed documents that
// violate program structure are 422s.
func handleCompileError(c fiber.Ctx, err error) error {
	switch {
	case graph.IsInvalidDocument(err):
		return compileProblem(c, fiber.StatusBadRequest, "invalid_document", err)

	case errors.Is(err, blocks.ErrUnknownKind):
		return compileProblem(c, fiber.StatusBadRequest, "unknown_kind", err)

	case graph.IsAmbiguousEdgeDirection(err):
		return compileProblem(c, fiber.StatusBadRequest, "ambiguous_edge_direction", err)

	case graph.IsCyclicGraph(err):
		return compileProblem(c, fiber.StatusUnprocessableEntity, "cyclic_graph", err)

	case graph.IsControlCycle(err):
		return compileProblem(c, fiber.StatusUnprocessableEntity, "control_cycle", err)

	case errors.Is(err, compiler.ErrMissingRequiredPort):
		return compileProblem(c, fiber.StatusUnprocessableEntity, "missing_required_port", err)

	case errors.Is(err, compiler.ErrDuplicateInputProducer):
		return compileProblem(c, fiber.StatusUnprocessableEntity, "duplicate_input_producer", err)

	case errors.Is(err, compiler.ErrFieldRequiresLiteral):
		return compileProblem(c, fiber.StatusUnprocessableEntity, "field_requires_literal", err)

	default:
		return internalError(c, err)
	}
}

func compileProblem(c fiber.Ctx, status int, kind string, err error) error {
	problem := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(err.Error())

	return c.Status(status).JSON(problem)
}

// handleStoreError maps persistence errors onto problem responses.
func handleStoreError(c fiber.Ctx, err error) error {
	if persistence.IsRunNotFound(err) {
		return notFound(c, "run not found")
	}

	return internalError(c, err)
}
