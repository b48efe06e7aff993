// Package ui is the terminal frontend: transcript viewport, input line,
// sending indicator and the PIX payment summary overlay.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PedroMGGDev/papelaria-digital/internal/chat"
	"github.com/PedroMGGDev/papelaria-digital/internal/format"
	"github.com/PedroMGGDev/papelaria-digital/internal/payment"
	"github.com/PedroMGGDev/papelaria-digital/internal/session"
)

// scrollSettleDelay lets the viewport take new content before jumping to the
// bottom. Not a correctness contract, just a layout-settle pause.
const scrollSettleDelay = 100 * time.Millisecond

type (
	entryMsg   struct{ msg session.Message }
	clearMsg   struct{}
	summaryMsg struct{ info payment.Info }

	startedMsg   struct{}
	sendDoneMsg  struct{}
	sendPanicMsg struct{}
	resetDoneMsg struct{}
	scrollMsg    struct{}
)

// Model is the Bubble Tea model for the chat window.
type Model struct {
	ctrl      *chat.Controller
	formatter *format.Formatter
	log       *slog.Logger

	input textinput.Model
	spin  spinner.Model
	vp    viewport.Model

	styles  styles
	lines   []string
	history []string
	histIdx int
	sending bool
	summary string // rendered payment overlay, empty when hidden
	width   int
	height  int
	ready   bool
}

func New(ctrl *chat.Controller, formatter *format.Formatter, r *lipgloss.Renderer, log *slog.Logger) Model {
	in := textinput.New()
	in.Placeholder = "Digite sua mensagem..."
	in.Prompt = "> "
	in.CharLimit = 0
	in.Width = 60
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return Model{
		ctrl:      ctrl,
		formatter: formatter,
		log:       log,
		input:     in,
		spin:      sp,
		styles:    newStyles(r),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startCmd())
}

func (m Model) startCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Start()
		return startedMsg{}
	}
}

func (m Model) submitCmd(text string) tea.Cmd {
	ctrl, log := m.ctrl, m.log
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic while sending message", "panic", r)
				// the transcript owns the apology so it survives rebuilds
				ctrl.ReportUnexpected()
				msg = sendPanicMsg{}
			}
		}()
		ctrl.Submit(context.Background(), text)
		return sendDoneMsg{}
	}
}

func (m Model) resetCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Reset(context.Background())
		return resetDoneMsg{}
	}
}

func scrollCmd() tea.Cmd {
	return tea.Tick(scrollSettleDelay, func(time.Time) tea.Msg { return scrollMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(msg.Height-5, 3)
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.input.Width = max(msg.Width-4, 10)
		m.rebuild()
		m.vp.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if m.summary != "" {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.summary = ""
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+r":
			if m.sending {
				return m, nil
			}
			return m, m.resetCmd()

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.history = append(m.history, text)
			m.histIdx = len(m.history)
			m.input.SetValue("")
			m.sending = true
			return m, tea.Batch(m.spin.Tick, m.submitCmd(text))

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case entryMsg:
		m.lines = append(m.lines, m.renderEntry(msg.msg))
		m.vp.SetContent(strings.Join(m.lines, "\n"))
		return m, scrollCmd()

	case clearMsg:
		m.lines = nil
		m.vp.SetContent("")
		return m, nil

	case summaryMsg:
		m.summary = m.renderSummary(msg.info)
		return m, nil

	case scrollMsg:
		m.vp.GotoBottom()
		return m, nil

	case sendDoneMsg, sendPanicMsg:
		m.sending = false
		return m, nil

	case resetDoneMsg, startedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	title := m.styles.title.Render("Papelaria Digital — Assistente Virtual")

	body := m.vp.View()
	if m.summary != "" {
		body = lipgloss.Place(m.vp.Width, m.vp.Height, lipgloss.Center, lipgloss.Center, m.summary)
	}

	status := m.styles.hint.Render("enter envia · ctrl+r reinicia · esc sai")
	if m.sending {
		status = m.spin.View() + m.styles.status.Render(" Digitando...")
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", title, body, status, m.input.View())
}

// rebuild re-renders the whole transcript, used after a resize.
func (m *Model) rebuild() {
	transcript := m.ctrl.Transcript()
	m.lines = m.lines[:0]
	for _, msg := range transcript {
		m.lines = append(m.lines, m.renderEntry(msg))
	}
	m.vp.SetContent(strings.Join(m.lines, "\n"))
}

func (m Model) renderEntry(msg session.Message) string {
	avatar := "🤖 Papelaria"
	style := m.styles.bot
	if msg.Sender == session.SenderUser {
		avatar = "🧑 Você"
		style = m.styles.user
	}
	header := style.Render(avatar) + " " + m.styles.timestamp.Render(msg.RenderedAt.Format("15:04"))
	body := m.formatter.Format(msg.Body)
	if m.width > 0 {
		body = lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(body)
	}
	return header + "\n" + body + "\n"
}

func (m Model) renderSummary(info payment.Info) string {
	var b strings.Builder
	b.WriteString(m.styles.modalTitle.Render("💳 Pagamento PIX Gerado com Sucesso!"))
	b.WriteString("\n\n")
	b.WriteString("Seu pedido foi processado. Para finalizar a\ncompra, realize o pagamento via PIX:\n")
	if info.Amount != "" {
		b.WriteString("\nValor Total: R$ " + info.Amount + "\n")
	}
	if info.Link != "" {
		b.WriteString("\nLink de pagamento:\n" + info.Link + "\n")
	}
	b.WriteString("\nApós a confirmação do pagamento, seu pedido\nserá processado em até 2 dias úteis.\n\n")
	b.WriteString(m.styles.hint.Render("pressione qualquer tecla para fechar"))
	return m.styles.modal.Render(b.String())
}
