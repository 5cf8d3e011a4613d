package inventory

import "time"

// Порог остатка (в единицах продажи), ниже которого товар считается заканчивающимся
const LowStockThreshold = 10

// Item — строка товарного остатка. Количество хранится в базовой единице
// (граммы, миллилитры, штуки), продажа и отображение идут в единице продажи.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku,omitempty"`
	QuantityBase float64   `json:"quantity_base"`
	Price        float64   `json:"price"`
	BaseUnit     string    `json:"base_unit"`
	DisplayUnit  string    `json:"display_unit"`
	Factor       float64   `json:"factor"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// QuantityDisplay возвращает остаток в единицах продажи
func (i Item) QuantityDisplay() float64 {
	return ToDisplay(i.QuantityBase, i.Factor)
}

// Low сообщает, что остаток ниже порога и товар пора дозаказывать
func (i Item) Low() bool {
	return i.QuantityDisplay() < LowStockThreshold
}
