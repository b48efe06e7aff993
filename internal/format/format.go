// Package format turns raw bot text into styled terminal markup: bold spans,
// highlighted links and dedicated styling for PIX payment blocks.
package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section markers that switch on the payment styling pass. Backend contract.
const (
	sectionOrderSummary = "RESUMO DO PEDIDO"
	sectionPixPayment   = "PAGAMENTO PIX"
	pixHeader           = "PAGAMENTO PIX GERADO:"
	pixLinkLabel        = "Link de pagamento:"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
	// stops at whitespace or an escape byte so already-styled text is not swallowed
	urlPattern = regexp.MustCompile(`https?://[^\s\x1b]+`)
)

// Formatter applies the text rewrites in a fixed order: newline normalization,
// bold spans, links, then payment-block styling. The payment pass matches the
// de-asterisked text the bold pass produces, so the order is load-bearing.
// Formatting is idempotent: running it over its own output changes nothing.
type Formatter struct {
	bold    lipgloss.Style
	link    lipgloss.Style
	pixHead lipgloss.Style
	pixLine lipgloss.Style

	linkOpen    string
	pixHeadOpen string
	pixLineOpen string
}

// New builds a Formatter on the given renderer. Tests pass a renderer with a
// forced color profile to get deterministic output.
func New(r *lipgloss.Renderer) *Formatter {
	f := &Formatter{
		bold:    r.NewStyle().Bold(true),
		link:    r.NewStyle().Underline(true).Foreground(lipgloss.Color("12")),
		pixHead: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		pixLine: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
	f.linkOpen = openSequence(f.link)
	f.pixHeadOpen = openSequence(f.pixHead)
	f.pixLineOpen = openSequence(f.pixLine)
	return f
}

// openSequence returns the escape sequence a style emits before its content,
// empty when the renderer profile strips styling entirely.
func openSequence(st lipgloss.Style) string {
	const probe = "\x00"
	rendered := st.Render(probe)
	i := strings.Index(rendered, probe)
	if i <= 0 {
		return ""
	}
	return rendered[:i]
}

func (f *Formatter) Format(raw string) string {
	out := normalizeNewlines(raw)
	out = f.applyBold(out)
	out = f.applyLinks(out)
	if strings.Contains(out, sectionOrderSummary) || strings.Contains(out, sectionPixPayment) {
		out = f.applyPixStyling(out)
	}
	return out
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (f *Formatter) applyBold(s string) string {
	return boldPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "**"), "**")
		return f.bold.Render(inner)
	})
}

func (f *Formatter) applyLinks(s string) string {
	if f.linkOpen == "" {
		return s
	}
	matches := urlPattern.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		url := s[m[0]:m[1]]
		if strings.HasSuffix(s[:m[0]], f.linkOpen) {
			b.WriteString(url)
		} else {
			b.WriteString(f.link.Render(url))
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// applyPixStyling wraps the PIX-generated header line and the payment-link
// line in their dedicated styles.
func (f *Formatter) applyPixStyling(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		switch {
		case strings.Contains(line, pixHeader):
			lines[i] = f.styleLineOnce(line, f.pixHead, f.pixHeadOpen)
		case strings.Contains(line, pixLinkLabel):
			lines[i] = f.styleLineOnce(line, f.pixLine, f.pixLineOpen)
		}
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) styleLineOnce(line string, st lipgloss.Style, open string) string {
	if open == "" || strings.HasPrefix(line, open) {
		return line
	}
	return st.Render(line)
}
