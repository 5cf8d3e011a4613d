package items

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lavka/internal/app/server/api/http/middleware/auth"
	"lavka/internal/domain/inventory"
)

type Handler struct {
	service    inventory.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service inventory.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		h.log.Error("list items failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось прочитать товары")
	}

	return &listOutput{Body: listResponse{Items: items}}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidInput) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("create item failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось создать товар")
	}

	return &createOutput{Body: createResponse{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item := input.Body
	item.ID = input.ID

	if err := h.service.Update(ctx, userID, item); err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			return nil, huma.Error404NotFound(err.Error())
		case errors.Is(err, inventory.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("update item failed", "item_id", input.ID, "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось обновить товар")
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		h.log.Error("delete item failed", "item_id", input.ID, "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("не удалось удалить товар")
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
