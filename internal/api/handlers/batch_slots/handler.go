package batch_slots

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const msgInvalidDate = "format de date invalide, attendu AAAA-MM-JJ"

// Action пакетная операция над слотами дня
type Action int

const (
	BlockAll Action = iota
	UnblockAll
)

func (a Action) route() string {
	if a == BlockAll {
		return "POST /admin/slots/block-all"
	}
	return "POST /admin/slots/unblock-all"
}

type Handler struct {
	service AdminService
	action  Action
	logger  Logger
}

func NewHandler(service AdminService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/block-all?date= и /unblock-all?date=
// Частичный отказ отражается в счетчиках, ответ всегда 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDateParam(r.URL.Query().Get("date"), h.service.Today())
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", h.action.route(), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var apply func(ctx context.Context, date time.Time) admin.BatchResult
	switch h.action {
	case BlockAll:
		apply = h.service.BlockAllSlots
	default:
		apply = h.service.UnblockAllSlots
	}

	result := apply(r.Context(), date)
	if result.Skipped > 0 {
		h.logger.Warn("%s - Partial result: date=%s, succeeded=%d, skipped=%d",
			h.action.route(), date.Format(domain.DateFormat), result.Succeeded, result.Skipped)
	}

	handlers.RespondJSON(w, http.StatusOK, BatchResponse{
		Date:      date.Format(domain.DateFormat),
		Succeeded: result.Succeeded,
		Skipped:   result.Skipped,
		Message:   result.Message,
	})
}
