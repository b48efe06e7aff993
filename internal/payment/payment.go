// Package payment pulls structured PIX payment data out of free-text bot
// replies. The markers and labels matched here are emitted literally by the
// backend; they must not change independently of it.
package payment

import (
	"regexp"
	"strings"
)

const (
	markerPixGenerated = "PIX GERADO"
	markerPaymentLink  = "Link de pagamento"
)

var (
	linkPattern   = regexp.MustCompile(`Link de pagamento:\*\* (https?://\S+)`)
	amountPattern = regexp.MustCompile(`\*\*Total: R\$ ([\d.,]+)\*\*`)
)

// Info carries the payment fields found in a reply. Absent fields are empty
// strings; absence is not an error.
type Info struct {
	Amount string
	Link   string
}

// Triggered reports whether text carries a completed payment instruction.
func Triggered(text string) bool {
	return strings.Contains(text, markerPixGenerated) ||
		strings.Contains(text, markerPaymentLink)
}

// Extract scans text for the payment link and total amount. Only the first
// occurrence of each pattern is used; multiple payment blocks in one reply are
// not supported.
func Extract(text string) Info {
	var info Info
	if m := linkPattern.FindStringSubmatch(text); m != nil {
		info.Link = m[1]
	}
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		info.Amount = m[1]
	}
	return info
}
