package sale

import (
	"time"

	"lavka/internal/domain/operation"
)

// Sale — проведенная продажа (чек). Локально кэшируется в коллекции sales,
// на сервере лежит строкой в журнале продаж.
type Sale struct {
	ID        int64                `json:"id"`
	InvoiceID string               `json:"invoice_id"`
	Date      time.Time            `json:"date"`
	Amount    float64              `json:"amount"`
	Customer  string               `json:"customer,omitempty"`
	Items     []operation.SaleItem `json:"items"`
	Synced    bool                 `json:"synced"`
}

// ItemCount возвращает число позиций в чеке
func (s Sale) ItemCount() int {
	return len(s.Items)
}

// Total пересчитывает сумму чека по позициям
func Total(items []operation.SaleItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * it.QuantityDisplay
	}
	return sum
}
