package redact

import (
	"strings"

	"github.com/brunosoares877/Crefaz/internal/brdoc"
)

// CPF оставляет первые три и последние две цифры: 123.***.***-09.
func CPF(s string) string {
	d := brdoc.Digits(s)
	if len(d) != 11 {
		return "***"
	}

	return d[:3] + ".***.***-" + d[9:]
}

// Phone оставляет только последние четыре цифры.
func Phone(s string) string {
	d := brdoc.Digits(s)
	if len(d) < 4 {
		return "***"
	}

	return "***" + d[len(d)-4:]
}

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

func Token() string  { return "[REDACTED_TOKEN]" }
func Secret() string { return "[REDACTED_SECRET]" }
