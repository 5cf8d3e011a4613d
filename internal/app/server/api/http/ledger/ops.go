package ledger

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "ledger-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/ledger",
		Summary:     "Записать строку в долговую книгу",
		Tags:        []string{"ledger"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) customersOp() huma.Operation {
	return huma.Operation{
		OperationID: "ledger-customers",
		Method:      http.MethodGet,
		Path:        "/api/v1/customers",
		Summary:     "Покупатели с балансами долгов",
		Tags:        []string{"ledger"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) entriesOp() huma.Operation {
	return huma.Operation{
		OperationID: "ledger-entries",
		Method:      http.MethodGet,
		Path:        "/api/v1/customers/{name}/ledger",
		Summary:     "История долговой книги покупателя",
		Tags:        []string{"ledger"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
