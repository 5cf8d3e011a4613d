package ledger

import "errors"

var (
	ErrNotFound     = errors.New("покупатель не найден")
	ErrInvalidInput = errors.New("некорректная долговая запись")
)
