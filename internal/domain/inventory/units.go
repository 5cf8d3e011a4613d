package inventory

import "strings"

// Пересчет единиц — чистая арифметика без ввода-вывода. Одни и те же функции
// используются при продаже онлайн и при отложенном повторе операции из
// очереди, поэтому результат обязан быть детерминированным: иначе повтор
// даст на сервере другой остаток, чем дала бы продажа в онлайне.

// ToBase переводит количество из единиц продажи в базовые единицы.
// 1 единица продажи = factor базовых единиц.
func ToBase(display, factor float64) float64 {
	return display * factor
}

// ToDisplay переводит количество из базовых единиц в единицы продажи.
// Нулевой или отрицательный коэффициент трактуется как 1, деления на ноль
// не бывает.
func ToDisplay(base, factor float64) float64 {
	if factor <= 0 {
		factor = 1
	}
	return base / factor
}

// Deduct списывает проданное количество (в единицах продажи) с остатка
// (в базовых единицах). Остаток не уходит в минус: при продаже сверх
// учтенного остатка возвращается 0.
func Deduct(base, soldDisplay, factor float64) float64 {
	rest := base - ToBase(soldDisplay, factor)
	if rest < 0 {
		return 0
	}
	return rest
}

// NormalizeName приводит название товара к виду для сопоставления со
// строками удаленного хранилища: пробелы по краям убираются, регистр не
// учитывается. Сопоставление при повторе идет по названию, а не по
// локальному id — положение строк на сервере к моменту повтора могло
// измениться.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName сравнивает названия товаров по правилам NormalizeName
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
