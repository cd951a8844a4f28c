package api

import (
	"github.com/bilgisen/dashboard/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	msgAnalysisNotFound  = "AI analysis file not found"
	msgDashboardNotFound = "Error loading dashboard"
	msgServerError       = "Server Error: "
)

type Handlers struct {
	storage *storage.Storage
	log     *zerolog.Logger
}

func NewHandlers(store *storage.Storage, log *zerolog.Logger) *Handlers {
	return &Handlers{
		storage: store,
		log:     log,
	}
}

// ServeAnalysis handles the reserved AI analysis route
func (h *Handlers) ServeAnalysis(c *fiber.Ctx) error {
	data, err := h.storage.ReadAnalysis(c.UserContext())
	if err != nil {
		if storage.IsNotExist(err) {
			return c.Status(fiber.StatusNotFound).SendString(msgAnalysisNotFound)
		}
		return fiber.NewError(fiber.StatusInternalServerError, msgServerError+storage.ErrorCode(err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// ServeStatic serves a file from the dashboard directory, falling back to the
// SPA entry file when the path does not exist
func (h *Handlers) ServeStatic(c *fiber.Ctx) error {
	urlPath := c.Path()

	data, err := h.storage.ReadAsset(c.UserContext(), urlPath)
	switch {
	case err == nil:
		c.Set(fiber.HeaderContentType, ContentTypeFor(h.storage.AssetPath(urlPath)))
		return c.Send(data)
	case storage.IsNotExist(err):
		return h.serveIndex(c)
	default:
		h.log.Debug().
			Err(err).
			Str("path", urlPath).
			Msg("Failed to read dashboard asset")
		return fiber.NewError(fiber.StatusInternalServerError, msgServerError+storage.ErrorCode(err))
	}
}

// serveIndex answers with the SPA entry file. The status stays 200 so
// client-side routing can take over the unmatched path.
func (h *Handlers) serveIndex(c *fiber.Ctx) error {
	data, err := h.storage.ReadIndex(c.UserContext())
	if err != nil {
		h.log.Debug().
			Err(err).
			Str("index", h.storage.IndexPath()).
			Msg("Failed to read dashboard entry file")
		return fiber.NewError(fiber.StatusInternalServerError, msgDashboardNotFound)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.Send(data)
}
