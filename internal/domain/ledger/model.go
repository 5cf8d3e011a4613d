package ledger

import "time"

// Entry — запись долговой книги. Положительная сумма увеличивает долг
// покупателя, отрицательная — погашение.
type Entry struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Note         string    `json:"note,omitempty"`
	Date         time.Time `json:"date"`
}

// Customer — покупатель с накопленным балансом долга
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone,omitempty"`
	Balance float64 `json:"balance"`
}
