package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/kwaitlist/internal/audit"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
)

type approveRequest struct {
	Email string `json:"email"`
}

type rejectRequest struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type bulkApproveRequest struct {
	Emails []string `json:"emails"`
	Count  int      `json:"count"`
}

type AdminHandler struct {
	adminService WaitlistAdminService
}

func NewAdminHandler(adminService WaitlistAdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func getActor(ctx *fiber.Ctx) (waitlist.Actor, error) {
	claims := auth.GetClaims(ctx)
	if claims == nil {
		return waitlist.Actor{}, fiber.ErrUnauthorized
	}
	return waitlist.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func recordAdminAction(ctx *fiber.Ctx, actor waitlist.Actor, eventType string, email string, count int, reason string) {
	err := audit.RecordAdminAction(ctx.UserContext(), audit.AdminActionRecord{
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		EventType: eventType,
		Email:     email,
		Count:     count,
		Reason:    reason,
		IP:        ctx.IP(),
		UserAgent: string(ctx.Request().Header.UserAgent()),
	})
	if err != nil {
		slog.Error("Failed to record audit event", "event", eventType, "error", err)
	}
}

func (h *AdminHandler) PostApprove(ctx *fiber.Ctx) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}
	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}

	entry, err := h.adminService.Approve(ctx.UserContext(), actor, req.Email)
	if err != nil {
		return err
	}
	recordAdminAction(ctx, actor, audit.EventTypeWaitlistApproved, entry.Email, 1, "")
	return ctx.JSON(NewDataResponse(entry))
}

func (h *AdminHandler) PostReject(ctx *fiber.Ctx) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}
	var req rejectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Reason) > maxReasonLength {
		return badRequest("INVALID_REASON", "Reason is too long.")
	}

	entry, err := h.adminService.Reject(ctx.UserContext(), actor, req.Email, req.Reason)
	if err != nil {
		return err
	}
	recordAdminAction(ctx, actor, audit.EventTypeWaitlistRejected, entry.Email, 1, req.Reason)
	return ctx.JSON(NewDataResponse(entry))
}

func (h *AdminHandler) PostBulkApprove(ctx *fiber.Ctx) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}
	var req bulkApproveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest("INVALID_BODY", "Invalid request body.")
	}
	if len(req.Emails) == 0 && req.Count <= 0 {
		return badRequest("INVALID_BULK_REQUEST", "Either emails or a positive count is required.")
	}

	result, err := h.adminService.BulkApprove(ctx.UserContext(), actor, waitlist.BulkApproveRequest{
		Emails: req.Emails,
		Count:  req.Count,
	})
	if err != nil {
		return err
	}
	recordAdminAction(ctx, actor, audit.EventTypeWaitlistBulkApproved, "", result.Count, "")
	return ctx.JSON(NewDataResponse(result))
}

func (h *AdminHandler) GetList(ctx *fiber.Ctx) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}
	status := model.EntryStatus(ctx.Query("status"))
	if status != "" && !waitlist.IsValidStatus(status) {
		return badRequest("INVALID_STATUS", "Unknown status filter.")
	}
	sortBy := ctx.Query("sortBy")
	if sortBy != "" && !waitlist.IsValidSortField(sortBy) {
		return badRequest("INVALID_SORT_FIELD", "Unknown sort field.")
	}
	direction := ctx.Query("sortDirection")
	if direction != "" && direction != "asc" && direction != "desc" {
		return badRequest("INVALID_SORT_DIRECTION", "Sort direction must be asc or desc.")
	}

	result, err := h.adminService.List(ctx.UserContext(), actor, waitlist.ListQuery{
		Status:        status,
		Page:          ctx.QueryInt("page", 1),
		Limit:         ctx.QueryInt("limit", 0),
		SortBy:        sortBy,
		SortDirection: direction,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(result))
}

func (h *AdminHandler) GetStats(ctx *fiber.Ctx) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}
	stats, err := h.adminService.Stats(ctx.UserContext(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(stats))
}
