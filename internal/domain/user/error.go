package user

import "errors"

var (
	ErrNotFound     = errors.New("пользователь не найден")
	ErrInvalidInput = errors.New("некорректные данные")
	ErrInvalidAuth  = errors.New("неверный логин или пароль")
	ErrLoginTaken   = errors.New("логин уже занят")
)
