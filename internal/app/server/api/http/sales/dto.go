package sales

import (
	"time"

	"lavka/internal/domain/operation"
	"lavka/internal/domain/sale"
)

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Date      time.Time            `json:"date"`
	Amount    float64              `json:"amount"`
	InvoiceID string               `json:"invoice_id" doc:"Идентификатор чека, назначается клиентом" minLength:"1"`
	Customer  string               `json:"customer,omitempty"`
	Items     []operation.SaleItem `json:"items,omitempty"`
	ItemCount int                  `json:"item_count,omitempty"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Sales []sale.Sale `json:"sales"`
}
