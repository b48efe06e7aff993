package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PedroMGGDev/papelaria-digital/internal/payment"
	"github.com/PedroMGGDev/papelaria-digital/internal/session"
)

// Bridge implements chat.Renderer by forwarding controller events onto the
// Bubble Tea loop, so all model mutation happens in Update regardless of
// which goroutine the controller runs on.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewBridge() *Bridge { return &Bridge{} }

// Attach binds the bridge to a running program. Events arriving before Attach
// are dropped.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.p = p
	b.mu.Unlock()
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (b *Bridge) Render(msg session.Message) { b.send(entryMsg{msg: msg}) }

func (b *Bridge) Clear() { b.send(clearMsg{}) }

func (b *Bridge) ShowPaymentSummary(info payment.Info) { b.send(summaryMsg{info: info}) }
