package items

import "lavka/internal/domain/inventory"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Items []inventory.Item `json:"items"`
}

type createInput struct {
	Body inventory.Item
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"ID строки товара"`
	Body inventory.Item
}

type deleteInput struct {
	ID int64 `path:"id" example:"1" doc:"ID строки товара"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
