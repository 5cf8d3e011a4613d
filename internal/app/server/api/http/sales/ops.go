package sales

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "sales-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/sales",
		Summary:     "Записать чек в журнал продаж",
		Description: "Повтор с тем же invoice_id не создает дубликат: клиент может доставить чек дважды.",
		Tags:        []string{"sales"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "sales-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/sales",
		Summary:     "Журнал продаж лавки",
		Tags:        []string{"sales"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
