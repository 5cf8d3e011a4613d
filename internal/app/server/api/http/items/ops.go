package items

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "Список товарных остатков лавки",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Завести строку товара",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}",
		Summary:     "Перезаписать строку товара",
		Description: "Клиент пишет новый остаток после списания, строку целиком.",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Удалить строку товара",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
