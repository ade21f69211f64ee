// brdoc — маски и проверка формата бразильских документов: CPF, телефон, дата.
package brdoc

import (
	"regexp"
	"strings"
	"time"
)

var (
	cpfRe   = regexp.MustCompile(`^\d{11}$|^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	phoneRe = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$|^\d{10,11}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Digits оставляет в строке только цифры ASCII.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// ValidCPF проверяет формат: 11 цифр или маска 000.000.000-00.
func ValidCPF(s string) bool { return cpfRe.MatchString(s) }

// ValidPhone проверяет формат: (00) 0000-0000, (00) 00000-0000 или 10–11 цифр.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// FormatCPF применяет маску по мере ввода; лишние цифры отбрасываются.
func FormatCPF(s string) string {
	d := cut(Digits(s), 11)

	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// FormatPhone: (11) 9876-5432 для 10 цифр, (11) 98765-4321 для 11.
func FormatPhone(s string) string {
	d := cut(Digits(s), 11)

	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// FormatDate применяет маску DD/MM/AAAA.
func FormatDate(s string) string {
	d := cut(Digits(s), 8)

	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}

// Принимаемые форматы даты рождения.
const (
	layoutBR  = "02/01/2006"
	layoutISO = "2006-01-02"
)

// ParseDate разбирает дату в формате DD/MM/AAAA или ISO (AAAA-MM-DD,
// допускается полный RFC 3339). Несуществующие даты (31/02) отклоняются.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{layoutBR, layoutISO, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cut(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}

	return s
}
