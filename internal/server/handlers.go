// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	msgListFailed = "Failed to fetch papers"
	msgIDRequired = "Paper ID is required"
	msgNotFound   = "Paper not found"
	msgGetFailed  = "Failed to fetch paper"
)

// listPapers handles GET /api/papers.
func (s *Server) listPapers(c *fiber.Ctx) error {
	list, err := s.service().List(c.UserContext())
	if err != nil {
		s.deps.Logger.Error().Err(err).
			Str("op", "list").
			Str("request_id", requestID(c)).
			Msg(msgListFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: msgListFailed})
	}
	return c.JSON(list)
}

// getPaper handles GET /api/papers/:id.
func (s *Server) getPaper(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: msgIDRequired})
	}

	detail, err := s.service().Get(c.UserContext(), id)
	if err != nil {
		s.deps.Logger.Error().Err(err).
			Str("op", "get").
			Str("paper_id", id).
			Str("request_id", requestID(c)).
			Msg(msgGetFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: msgGetFailed})
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: msgNotFound})
	}
	return c.JSON(detail)
}
