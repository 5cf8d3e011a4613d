package ledger

import (
	"time"

	"lavka/internal/domain/ledger"
)

type createInput struct {
	Body createRequest
}

type createRequest struct {
	CustomerName string    `json:"customer_name" doc:"Имя покупателя" minLength:"1"`
	Amount       float64   `json:"amount" doc:"Положительная сумма — долг вырос, отрицательная — погашение"`
	Note         string    `json:"note,omitempty"`
	Date         time.Time `json:"date"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type customersOutput struct {
	Body customersResponse
}

type customersResponse struct {
	Customers []ledger.Customer `json:"customers"`
}

type entriesInput struct {
	Name string `path:"name" doc:"Имя покупателя"`
}

type entriesOutput struct {
	Body entriesResponse
}

type entriesResponse struct {
	Entries []ledger.Entry `json:"entries"`
}
