package ledger

import "context"

type Repository interface {
	// AddEntry заводит покупателя при первой записи и добавляет строку в книгу
	AddEntry(ctx context.Context, userID int, entry *Entry) (int64, error)
	// Customers возвращает покупателей с балансом (сумма записей книги)
	Customers(ctx context.Context, userID int) ([]Customer, error)
	Entries(ctx context.Context, userID int, customerName string) ([]Entry, error)
}
