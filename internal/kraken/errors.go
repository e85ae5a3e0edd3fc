// Package kraken реализует клиент приватного и публичного REST API Kraken.
package kraken

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCandles возвращается, когда OHLC не принёс ни одной свечи
var ErrNoCandles = errors.New("kraken: no OHLC candles in response")

// APIError - ошибка, которую Kraken вернул в поле "error" конверта.
// Считается структурной: проход прерывается.
type APIError struct {
	Endpoint string
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kraken %s: %s", e.Endpoint, strings.Join(e.Messages, "; "))
}

// MissingFieldError - в ответе нет обязательного поля (обычно "result")
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("kraken: response missing field %q", e.Field)
}

// BadParseError - числовое поле пришло в нечитаемом виде.
// Kraken отдаёт цены и объёмы десятичными строками.
type BadParseError struct {
	Field string
	Value string
	Err   error
}

func (e *BadParseError) Error() string {
	return fmt.Sprintf("kraken: cannot parse %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *BadParseError) Unwrap() error { return e.Err }
