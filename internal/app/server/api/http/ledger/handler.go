package ledger

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lavka/internal/app/server/api/http/middleware/auth"
	"lavka/internal/domain/ledger"
)

type Handler struct {
	service    ledger.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service ledger.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.customersOp(), h.customers)
	huma.Register(api, h.entriesOp(), h.entries)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entry := ledger.Entry{
		CustomerName: input.Body.CustomerName,
		Amount:       input.Body.Amount,
		Note:         input.Body.Note,
		Date:         input.Body.Date,
	}

	id, err := h.service.AddEntry(ctx, userID, entry)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("add ledger entry failed", "customer", entry.CustomerName, "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось записать в долговую книгу")
	}

	return &createOutput{Body: createResponse{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) customers(ctx context.Context, _ *struct{}) (*customersOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	customers, err := h.service.Customers(ctx, userID)
	if err != nil {
		h.log.Error("list customers failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось прочитать покупателей")
	}

	return &customersOutput{Body: customersResponse{Customers: customers}}, nil
}

func (h *Handler) entries(ctx context.Context, input *entriesInput) (*entriesOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.Entries(ctx, userID, input.Name)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("list ledger entries failed", "customer", input.Name, "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось прочитать долговую книгу")
	}

	return &entriesOutput{Body: entriesResponse{Entries: entries}}, nil
}
