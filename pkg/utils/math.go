package utils

import (
	"math"
	"strconv"
)

// math.go - числовые утилиты для работы с ценами и объёмами
//
// Назначение:
// Биржа принимает и возвращает цены и объёмы десятичными строками.
// Все вычисления внутри ядра выполняются в float64; на границе с биржей
// значения конвертируются этими функциями.
//
// Все функции являются чистыми (pure functions) без побочных эффектов.

// ParseDecimal разбирает десятичную строку биржи в float64.
//
// Возвращает ошибку при пустой строке или невалидном формате.
func ParseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ParseDecimalOr разбирает десятичную строку, возвращая fallback при ошибке.
//
// Используется там, где невалидное значение не должно прерывать проход
// (например, цена из OHLC по умолчанию 0.0).
func ParseDecimalOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// FormatPrice форматирует цену в десятичную строку для отправки на биржу.
//
// Использует минимальное количество знаков, необходимое для точного
// представления значения (без хвостовых нулей).
//
// Примеры:
//   - FormatPrice(3.43) = "3.43"
//   - FormatPrice(0.392) = "0.392"
//   - FormatPrice(4000) = "4000"
func FormatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// RoundTo округляет значение до decimals знаков после запятой.
//
// Параметры:
//   - value: исходное значение
//   - decimals: количество знаков (отрицательное значение = без округления)
//
// Примеры:
//   - RoundTo(37.93103448, 5) = 37.93103
//   - RoundTo(3.4299999, 2) = 3.43
func RoundTo(value float64, decimals int) float64 {
	if decimals < 0 {
		return value
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

// ApproxEqual проверяет равенство двух float64 с допуском epsilon.
//
// Нужна для сравнения результатов цепочек вычислений с плавающей точкой.
func ApproxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
