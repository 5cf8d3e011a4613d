package sale

import "errors"

var (
	ErrNotFound     = errors.New("продажа не найдена")
	ErrInvalidInput = errors.New("некорректные данные продажи")
)
