// Package phone форматирует и проверяет локальные номера телефонов вида (DD) DDDDD-DDDD.
package phone

import (
	"regexp"
	"strings"
)

// MaxDigits код города (2) + абонентский номер (до 9)
const MaxDigits = 11

// Pattern номер с 4- или 5-значным первым сегментом абонентского номера
var Pattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)

// Digits оставляет только цифры
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format расставляет пунктуацию по мере ввода цифр. Лишние цифры сверх MaxDigits отбрасываются,
// 11 цифр делятся 5/4, меньше - 4/4.
func Format(raw string) string {
	d := Digits(raw)
	if len(d) > MaxDigits {
		d = d[:MaxDigits]
	}

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case n <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// IsValid проверяет, что номер полностью набран и отформатирован
func IsValid(formatted string) bool {
	return Pattern.MatchString(formatted)
}
