package sale

import "context"

type Repository interface {
	// Create сохраняет чек. Повтор с тем же invoice_id не создает дубликат:
	// клиент перекладывает очередь as-is и может прислать чек дважды.
	Create(ctx context.Context, userID int, s *Sale) (int64, error)
	List(ctx context.Context, userID int) ([]Sale, error)
}
