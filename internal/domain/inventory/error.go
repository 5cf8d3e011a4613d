package inventory

import "errors"

var (
	ErrNotFound     = errors.New("товар не найден")
	ErrInvalidInput = errors.New("некорректные данные товара")
)
