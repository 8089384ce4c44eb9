// Package normalize holds the Indian banking conventions applied to extracted
// fields: lakh/crore digit grouping and MICR line parsing.
package normalize

import "strings"

// FormatIndianCurrency formats an amount as "₹ 50,00,000/-".
// Every non-digit character (including a decimal point) is dropped first;
// an input without digits yields "".
func FormatIndianCurrency(amount string) string {
	var digits strings.Builder
	for _, r := range amount {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	// The amount is a number, so leading zeros go
	s := strings.TrimLeft(digits.String(), "0")
	if s == "" {
		s = "0"
	}

	return "₹ " + groupIndian(s) + "/-"
}

// groupIndian applies lakh/crore grouping: the last three digits, then pairs
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	// An odd-length head starts with a single digit group
	first := len(head) % 2
	if first == 1 {
		b.WriteString(head[:1])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
