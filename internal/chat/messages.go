package chat

import "time"

// User-facing texts, fixed pt-BR locale.
const (
	msgGreeting = "Olá! Bem-vindo à Papelaria Digital! 👋\n\n" +
		"Sou seu assistente virtual e estou aqui para ajudá-lo com todos os seus produtos de papelaria. Posso ajudá-lo a:\n\n" +
		"• Consultar nosso catálogo de produtos\n" +
		"• Fazer orçamentos\n" +
		"• Processar pedidos\n" +
		"• Calcular frete\n" +
		"• Gerar pagamento via PIX\n\n" +
		"Qual produto você está procurando hoje?"

	msgAppFailure = "Desculpe, ocorreu um erro. Tente novamente."

	msgConnFailure = "Desculpe, ocorreu um erro de conexão. Verifique sua internet e tente novamente."

	msgResetGreeting = "Conversa reiniciada! 🔄\n\nOlá novamente! Como posso ajudá-lo hoje?"

	msgResetFailure = "Erro ao reiniciar conversa. Feche e abra o aplicativo novamente."

	// MsgUnexpected covers failures nothing else caught.
	MsgUnexpected = "Ocorreu um erro inesperado. Por favor, tente novamente."
)

// resetGreetingDelay keeps the fresh greeting from flashing in before the
// cleared transcript has settled.
const resetGreetingDelay = 500 * time.Millisecond
