package brdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigits(t *testing.T) {
	require.Equal(t, "12345678909", Digits("123.456.789-09"))
	require.Equal(t, "11987654321", Digits("(11) 98765-4321"))
	require.Equal(t, "", Digits("abc"))
}

func TestValidCPF(t *testing.T) {
	for _, ok := range []string{"12345678909", "123.456.789-09"} {
		require.True(t, ValidCPF(ok), ok)
	}
	for _, bad := range []string{"", "1234567890", "123456789099", "123.456.789/09", "123.45.6789-09"} {
		require.False(t, ValidCPF(bad), bad)
	}
}

func TestValidPhone(t *testing.T) {
	for _, ok := range []string{"(11) 98765-4321", "(11) 9876-5432", "11987654321", "1198765432"} {
		require.True(t, ValidPhone(ok), ok)
	}
	for _, bad := range []string{"", "987654321", "(11)98765-4321", "119876543210"} {
		require.False(t, ValidPhone(bad), bad)
	}
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("maria@exemplo.com.br"))
	require.False(t, ValidEmail("maria@exemplo"))
	require.False(t, ValidEmail("ma ria@exemplo.com"))
}

func TestFormatCPF(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"123":            "123",
		"1234":           "123.4",
		"1234567":        "123.456.7",
		"12345678909":    "123.456.789-09",
		"1234567890912":  "123.456.789-09",
		"123.456.789-09": "123.456.789-09",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatCPF(in), in)
	}
}

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"1":           "(1",
		"11":          "(11",
		"119":         "(11) 9",
		"1198765":     "(11) 98765",
		"1198765432":  "(11) 9876-5432",
		"11987654321": "(11) 98765-4321",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatPhone(in), in)
	}
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "15", FormatDate("15"))
	require.Equal(t, "15/03", FormatDate("1503"))
	require.Equal(t, "15/03/1990", FormatDate("15031990"))
	require.Equal(t, "15/03/1990", FormatDate("15/03/1990"))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("15/03/1990")
	require.True(t, ok)
	require.Equal(t, 1990, d.Year())
	require.Equal(t, 3, int(d.Month()))

	_, ok = ParseDate("1990-03-15")
	require.True(t, ok)

	_, ok = ParseDate("1990-03-15T00:00:00Z")
	require.True(t, ok)

	for _, bad := range []string{"", "31/02/1990", "15-03-1990", "ontem"} {
		_, ok = ParseDate(bad)
		require.False(t, ok, bad)
	}
}
