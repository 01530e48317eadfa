package utils

import (
	"errors"
	"strings"
)

var ErrInvalidRUT = errors.New("invalid RUT")

// NormalizeRUT strips formatting from a Chilean RUT and validates its
// modulo-11 check digit. The result has the form "12345678-5".
func NormalizeRUT(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.NewReplacer(".", "", "-", "", " ", "").Replace(raw))
	if len(cleaned) < 2 {
		return "", ErrInvalidRUT
	}

	body, check := cleaned[:len(cleaned)-1], cleaned[len(cleaned)-1]
	for _, r := range body {
		if r < '0' || r > '9' {
			return "", ErrInvalidRUT
		}
	}
	body = strings.TrimLeft(body, "0")
	if body == "" || len(body) > 9 {
		return "", ErrInvalidRUT
	}

	if rutCheckDigit(body) != check {
		return "", ErrInvalidRUT
	}
	return body + "-" + string(check), nil
}

func rutCheckDigit(body string) byte {
	sum, factor := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch rest := 11 - sum%11; rest {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + rest)
	}
}
