package format_test

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroMGGDev/papelaria-digital/internal/format"
)

func newANSIFormatter() *format.Formatter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return format.New(r)
}

func newPlainFormatter() *format.Formatter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return format.New(r)
}

const pixReply = "Perfeito! Seu pedido foi processado com sucesso!\n\n" +
	"📦 **RESUMO DO PEDIDO:**\n" +
	"• Produto: Caderno Universitário\n" +
	"• **Total: R$ 123,45**\n\n" +
	"💳 **PAGAMENTO PIX GERADO:**\n" +
	"Para finalizar sua compra, realize o pagamento via PIX:\n\n" +
	"🔗 **Link de pagamento:** https://pay.example/abc123\n"

func TestBoldSpans(t *testing.T) {
	f := newANSIFormatter()
	out := f.Format("Olá! **Seu orçamento**: segue abaixo")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "Seu orçamento")
	assert.Contains(t, out, "\x1b[")
}

func TestLinkStyling(t *testing.T) {
	f := newANSIFormatter()
	in := "Acesse https://loja.example/catalogo para ver tudo"
	out := f.Format(in)
	assert.Contains(t, out, "https://loja.example/catalogo")
	assert.NotEqual(t, in, out)
}

func TestNewlineNormalization(t *testing.T) {
	f := newANSIFormatter()
	out := f.Format("linha um\r\nlinha dois\rlinha três")
	assert.Equal(t, "linha um\nlinha dois\nlinha três", out)
}

func TestPixBlockStyling(t *testing.T) {
	f := newANSIFormatter()
	out := f.Format(pixReply)

	var headerStyled, linkStyled bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "PAGAMENTO PIX GERADO:") {
			headerStyled = strings.HasPrefix(line, "\x1b[")
		}
		if strings.Contains(line, "Link de pagamento:") {
			linkStyled = strings.HasPrefix(line, "\x1b[")
		}
	}
	assert.True(t, headerStyled, "payment header line should carry its own style")
	assert.True(t, linkStyled, "payment link line should carry its own style")
}

func TestPixStylingNeedsSectionMarker(t *testing.T) {
	f := newANSIFormatter()
	out := f.Format("🔗 **Link de pagamento:** https://pay.example/abc123")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Link de pagamento:") {
			assert.False(t, strings.HasPrefix(line, "\x1b["),
				"payment styling must not fire without a section marker")
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	f := newANSIFormatter()
	samples := []string{
		"texto simples",
		"com **negrito** no meio",
		"link https://pay.example/abc123 no meio",
		"**negrito** e https://pay.example/abc123 juntos",
		pixReply,
	}
	for _, s := range samples {
		once := f.Format(s)
		twice := f.Format(once)
		require.Equal(t, once, twice, "input: %q", s)
	}
}

func TestPlainProfileStripsMarkers(t *testing.T) {
	f := newPlainFormatter()
	out := f.Format("Olá! **Seu orçamento**: veja https://loja.example/x")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "\x1b")
	assert.Contains(t, out, "Seu orçamento")
	assert.Contains(t, out, "https://loja.example/x")
}
