package sales

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lavka/internal/app/server/api/http/middleware/auth"
	"lavka/internal/domain/sale"
)

type Handler struct {
	service    sale.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sale.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	s := sale.Sale{
		InvoiceID: input.Body.InvoiceID,
		Date:      input.Body.Date,
		Amount:    input.Body.Amount,
		Customer:  input.Body.Customer,
		Items:     input.Body.Items,
	}

	id, err := h.service.Create(ctx, userID, s)
	if err != nil {
		if errors.Is(err, sale.ErrInvalidInput) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("create sale failed", "invoice_id", s.InvoiceID, "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось записать продажу")
	}

	return &createOutput{Body: createResponse{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	sales, err := h.service.List(ctx, userID)
	if err != nil {
		h.log.Error("list sales failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось прочитать журнал продаж")
	}

	return &listOutput{Body: listResponse{Sales: sales}}, nil
}
