package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/serenata/whistleblower/internal/models"
	"github.com/serenata/whistleblower/internal/repository"
	"github.com/serenata/whistleblower/internal/service"
)

type AdminHandler struct {
	ts   service.TwitterService
	repo repository.PostedTweetRepository
}

func NewAdminHandler(ts service.TwitterService, repo repository.PostedTweetRepository) *AdminHandler {
	return &AdminHandler{ts: ts, repo: repo}
}

// Provision backfills posted_tweets from the account's existing timeline.
func (h *AdminHandler) Provision(c *fiber.Ctx) error {
	if err := h.ts.ProvisionRecords(c.Context()); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to provision posted tweets",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Provisioning complete",
	})
}

// Follow friends every congressperson account in the reference dataset.
func (h *AdminHandler) Follow(c *fiber.Ctx) error {
	if err := h.ts.FollowCongresspeople(c.Context()); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to follow congresspeople",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Follow requests sent",
	})
}

func (h *AdminHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.repo.ListByTarget(c.Context(), models.TargetTwitter)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posted tweets",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *AdminHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}
