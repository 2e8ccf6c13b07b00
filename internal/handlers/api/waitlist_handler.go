package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/waitlist"
)

type joinRequest struct {
	Email      string          `json:"email"`
	ReferredBy string          `json:"referredBy"`
	Metadata   json.RawMessage `json:"metadata"`
}

type WaitlistHandler struct {
	waitlistService WaitlistService
}

func NewWaitlistHandler(waitlistService WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlistService,
	}
}

func (h *WaitlistHandler) PostJoin(ctx *fiber.Ctx) error {
	var req joinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Metadata) > 0 && !json.Valid(req.Metadata) {
		return badRequest("INVALID_METADATA", "Metadata must be valid JSON.")
	}

	entry, err := h.waitlistService.Join(ctx.UserContext(), waitlist.JoinRequest{
		Email:      req.Email,
		ReferredBy: strings.TrimSpace(req.ReferredBy),
		Metadata:   req.Metadata,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(NewDataResponse(newEntryStatusResponse(entry)))
}

func (h *WaitlistHandler) GetStatus(ctx *fiber.Ctx) error {
	email := ctx.Query("email")
	if err := validateEmail(email); err != nil {
		return err
	}
	entry, err := h.waitlistService.Status(ctx.UserContext(), email)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(newEntryStatusResponse(entry)))
}

func (h *WaitlistHandler) GetVerifyInvite(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return badRequest("MISSING_CODE", "Invite code is required.")
	}
	result, err := h.waitlistService.VerifyInvite(ctx.UserContext(), code)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(result))
}
