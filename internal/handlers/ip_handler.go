package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/ipatlas/geotrace/internal/dto"
	"github.com/ipatlas/geotrace/internal/principal"
	"github.com/ipatlas/geotrace/internal/services"
)

type IPHandler struct {
	lookupService  *services.LookupService
	historyService *services.HistoryService
}

func NewIPHandler(lookupService *services.LookupService, historyService *services.HistoryService) *IPHandler {
	return &IPHandler{lookupService: lookupService, historyService: historyService}
}

// Lookup serves both GET /ip/current and POST /ip/lookup: resolve the target
// IP, fetch its geolocation and append a history record for the caller.
func (h *IPHandler) Lookup(c *fiber.Ctx) error {
	p, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	ip := targetIP(c)

	result, err := h.lookupService.LookupAndRecord(c.UserContext(), p, ip)
	if err != nil {
		if errors.Is(err, services.ErrInvalidIP) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid IP address",
			})
		}
		// The failure kind (unreachable, unauthorized, no data, malformed,
		// storage) stays in the logs; clients get one generic message.
		slog.Error("ip lookup failed", "action", "lookup", "user_id", p.ID.String(), "ip", ip, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching geolocation data",
		})
	}

	return c.JSON(dto.LookupResponse{GeoData: result.Geo, IP: ip})
}

func (h *IPHandler) History(c *fiber.Ctx) error {
	p, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	records, err := h.historyService.List(p.ID)
	if err != nil {
		slog.Error("history fetch failed", "action", "history_list", "user_id", p.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching history",
		})
	}

	return c.JSON(records)
}

func (h *IPHandler) DeleteHistory(c *fiber.Ctx) error {
	p, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	var req dto.DeleteHistoryRequest
	if err := c.BodyParser(&req); err != nil || req.IDs == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid data format",
		})
	}

	deleted, err := h.historyService.DeleteMany(p.ID, req.IDs)
	if err != nil {
		slog.Error("history delete failed", "action", "history_delete", "user_id", p.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error deleting history",
		})
	}

	return c.JSON(dto.DeleteHistoryResponse{
		Message: "History deleted successfully",
		Deleted: deleted,
	})
}

// targetIP picks the lookup target: an explicit ip in the body or query
// wins, then the ip request header, then the transport-reported client
// address (which honors the configured trusted-proxy chain).
func targetIP(c *fiber.Ctx) string {
	if len(c.Body()) > 0 {
		var req dto.LookupRequest
		if err := c.BodyParser(&req); err == nil && req.IP != "" {
			return req.IP
		}
	}
	if ip := c.Query("ip"); ip != "" {
		return ip
	}
	if ip := c.Get("ip"); ip != "" {
		return ip
	}
	return c.IP()
}
