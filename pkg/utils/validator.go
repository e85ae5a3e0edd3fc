package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// validator.go - валидация входных данных API и конфигурации порогов
//
// Пороговые проценты хранятся во внешнем KV хранилище десятичными
// строками; перед записью значения проверяются здесь.

// pairPattern - формат торговой пары: заглавные буквы и цифры, 5-12 символов
// Примеры: KAVAEUR, OXTEUR, XBTUSDT
var pairPattern = regexp.MustCompile(`^[A-Z0-9]{5,12}$`)

// ValidatePair проверяет формат имени торговой пары
func ValidatePair(pair string) error {
	if pair == "" {
		return fmt.Errorf("pair is required")
	}
	if !pairPattern.MatchString(pair) {
		return fmt.Errorf("invalid pair format: %q", pair)
	}
	return nil
}

// ValidatePercentage проверяет, что строка - неотрицательный десятичный процент
//
// Значения сравниваются с нереализованной прибылью, которая никогда
// не бывает отрицательной, поэтому отрицательный порог - ошибка конфигурации.
func ValidatePercentage(value string) error {
	if value == "" {
		return fmt.Errorf("percentage is required")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %q: %w", value, err)
	}
	if v < 0 {
		return fmt.Errorf("percentage must be non-negative, got %s", value)
	}
	return nil
}
