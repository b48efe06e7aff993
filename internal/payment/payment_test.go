package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixReply = `Perfeito! Seu pedido foi processado com sucesso!

📦 **RESUMO DO PEDIDO:**
• Produto: Caderno Universitário
• Quantidade: 2
• Frete: R$ 12,00
• **Total: R$ 123,45**

💳 **PAGAMENTO PIX GERADO:**
Para finalizar sua compra, realize o pagamento via PIX:

🔗 **Link de pagamento:** https://pay.example/abc123

Obrigado por escolher a Papelaria Digital! 😊`

func TestTriggered(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"pix generated marker", "💳 **PAGAMENTO PIX GERADO:**", true},
		{"payment link marker", "🔗 **Link de pagamento:** https://x", true},
		{"plain reply", "Temos cadernos a partir de R$ 10,00.", false},
		{"empty", "", false},
		{"lowercase marker does not count", "pix gerado", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Triggered(tt.text))
		})
	}
}

func TestExtractLink(t *testing.T) {
	info := Extract("Link de pagamento:** https://pay.example/abc123")
	assert.Equal(t, "https://pay.example/abc123", info.Link)
}

func TestExtractAmount(t *testing.T) {
	info := Extract("**Total: R$ 123,45**")
	assert.Equal(t, "123,45", info.Amount)
}

func TestExtractWithoutMarkers(t *testing.T) {
	tests := []string{
		"",
		"Olá! Como posso ajudar?",
		"O total fica em R$ 99,90, posso fechar o pedido?",
		"https://example.com sem contexto de pagamento",
	}
	for _, text := range tests {
		info := Extract(text)
		assert.Empty(t, info.Link, "text: %q", text)
		assert.Empty(t, info.Amount, "text: %q", text)
	}
}

func TestExtractFullReply(t *testing.T) {
	require.True(t, Triggered(pixReply))
	info := Extract(pixReply)
	assert.Equal(t, "https://pay.example/abc123", info.Link)
	assert.Equal(t, "123,45", info.Amount)
}

func TestExtractUsesFirstOccurrence(t *testing.T) {
	text := "🔗 **Link de pagamento:** https://pay.example/first\n" +
		"🔗 **Link de pagamento:** https://pay.example/second\n" +
		"**Total: R$ 10,00** e depois **Total: R$ 20,00**"
	info := Extract(text)
	assert.Equal(t, "https://pay.example/first", info.Link)
	assert.Equal(t, "10,00", info.Amount)
}

func TestExtractLinkStopsAtWhitespace(t *testing.T) {
	info := Extract("🔗 **Link de pagamento:** https://pay.example/abc e pronto")
	assert.Equal(t, "https://pay.example/abc", info.Link)
}
