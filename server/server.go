// Package server exposes a workflow Editor over HTTP for a canvas front end.
// The canvas posts drops, connection proposals, batched change deltas and
// right-click selections; every response carries the notice to display.
package server

import (
	"errors"
	"io"
	"mime/multipart"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/format"
)

// HeaderRequestID carries the id assigned to each request.
const HeaderRequestID = "X-Request-ID"

type dropRequest struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type templateRequest struct {
	Label string `json:"label"`
}

type selectRequest struct {
	Kind workflow.SelectionKind `json:"kind"`
	ID   string                 `json:"id"`
}

// New builds the fiber app serving editor.
func New(editor *workflow.Editor, logger *log.Logger) *fiber.App {
	app := fiber.New()
	app.Use(requestLogger(logger))

	// ── Graph ─────────────────────────────────────────────────────────
	app.Get("/workflow", func(c fiber.Ctx) error {
		return c.JSON(editor.Graph())
	})

	app.Post("/drop", func(c fiber.Ctx) error {
		var req dropRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		node, err := editor.Drop(c.Context(),
			workflow.Payload{ID: req.ID, Label: req.Label},
			workflow.Position{X: req.X, Y: req.Y})
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"node": node})
	})

	app.Post("/connect", func(c fiber.Ctx) error {
		var req workflow.Connection
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		edge, err := editor.Connect(c.Context(), req.Source, req.Target)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"edge": edge})
	})

	app.Patch("/nodes", func(c fiber.Ctx) error {
		var changes []workflow.NodeChange
		if err := c.Bind().JSON(&changes); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := editor.ApplyNodeChanges(c.Context(), changes); err != nil {
			return fail(c, err)
		}
		return c.JSON(editor.Graph())
	})

	app.Patch("/edges", func(c fiber.Ctx) error {
		var changes []workflow.EdgeChange
		if err := c.Bind().JSON(&changes); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := editor.ApplyEdgeChanges(c.Context(), changes); err != nil {
			return fail(c, err)
		}
		return c.JSON(editor.Graph())
	})

	// ── Selection ─────────────────────────────────────────────────────
	app.Get("/selection", func(c fiber.Ctx) error {
		return c.JSON(editor.Selection())
	})

	app.Post("/selection", func(c fiber.Ctx) error {
		var req selectRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s, err := editor.Select(req.Kind, req.ID)
		if err != nil {
			return fail(c, err)
		}
		notice := workflow.NoticeEdgeSelected
		if s.Kind == workflow.SelectNode {
			n, _ := editor.Graph().Node(s.ID)
			notice = workflow.NoticeNodeSelected(n.Data.Label)
		}
		return c.JSON(fiber.Map{"selection": s, "notice": notice})
	})

	app.Delete("/selection", func(c fiber.Ctx) error {
		editor.ClearSelection()
		return c.SendStatus(204)
	})

	app.Post("/delete", func(c fiber.Ctx) error {
		deleted, err := editor.DeleteSelected(c.Context())
		if err != nil {
			return fail(c, err)
		}
		switch deleted.Kind {
		case workflow.SelectNode:
			return c.JSON(fiber.Map{"deleted": deleted, "notice": workflow.NoticeNodeDeleted})
		case workflow.SelectEdge:
			return c.JSON(fiber.Map{"deleted": deleted, "notice": workflow.NoticeEdgeDeleted})
		}
		return c.SendStatus(204)
	})

	// ── Templates ─────────────────────────────────────────────────────
	app.Get("/templates", func(c fiber.Ctx) error {
		return c.JSON(editor.Templates())
	})

	app.Post("/templates", func(c fiber.Ctx) error {
		var req templateRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		t, err := editor.AddTemplate(c.Context(), req.Label)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"template": t, "notice": workflow.NoticeTemplateAdded})
	})

	app.Delete("/templates/:id", func(c fiber.Ctx) error {
		if err := editor.RemoveTemplate(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"notice": workflow.NoticeTemplateRemoved})
	})

	// ── Import / export / reset ───────────────────────────────────────
	app.Get("/export", func(c fiber.Ctx) error {
		f, err := format.Parse(c.Query("format"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		data, err := format.Encode(c.Context(), editor.Graph(), f)
		if err != nil {
			return fail(c, err)
		}
		c.Attachment(f.FileName())
		c.Set(fiber.HeaderContentType, f.ContentType())
		return c.Send(data)
	})

	app.Post("/import", func(c fiber.Ctx) error {
		data := c.Body()
		if fh, err := c.FormFile("file"); err == nil {
			if data, err = readUpload(fh); err != nil {
				return c.Status(400).JSON(fiber.Map{"error": "unreadable upload"})
			}
		}
		if err := editor.Import(c.Context(), data); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"notice": workflow.NoticeImported})
	})

	app.Post("/reset", func(c fiber.Ctx) error {
		if err := editor.Reset(c.Context()); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"notice": workflow.NoticeReset})
	})

	return app
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// fail writes err with its notice and a status derived from its kind.
func fail(c fiber.Ctx, err error) error {
	return c.Status(status(err)).JSON(fiber.Map{
		"error":  err.Error(),
		"notice": workflow.NoticeFor(err),
	})
}

func status(err error) int {
	switch {
	case errors.Is(err, workflow.ErrUnknownEndpoint),
		errors.Is(err, workflow.ErrSameLabel),
		errors.Is(err, workflow.ErrDuplicateConnection),
		errors.Is(err, workflow.ErrCycleDetected) && !errors.Is(err, workflow.ErrInvalidWorkflowFormat):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrInvalidWorkflowFormat),
		errors.Is(err, workflow.ErrEmptyLabel),
		errors.Is(err, workflow.ErrInvalidChange),
		errors.Is(err, workflow.ErrInvalidEdge):
		return fiber.StatusBadRequest
	case errors.Is(err, workflow.ErrNodeNotFound),
		errors.Is(err, workflow.ErrEdgeNotFound),
		errors.Is(err, workflow.ErrTemplateNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, workflow.ErrDuplicateID):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func requestLogger(logger *log.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := uuid.NewString()
		c.Set(HeaderRequestID, id)
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"took", time.Since(start).Round(time.Microsecond),
		)
		return err
	}
}
