package viz

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gridsim/internal/network"
)

// Browser is a minimal interactive view cycling through a net's tables.
type Browser struct {
	net   *network.Net
	names []string
	sel   int
}

func NewBrowser(net *network.Net) Browser {
	return Browser{net: net, names: net.TableNames()}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "left", "h":
			b.sel = (b.sel + len(b.names) - 1) % len(b.names)
		case "right", "l", "tab":
			b.sel = (b.sel + 1) % len(b.names)
		}
	}
	return b, nil
}

func (b Browser) View() string {
	tab, ok := b.net.Table(b.names[b.sel])
	if !ok {
		return "no such table"
	}
	return RenderTable(tab, 30) +
		helpStyle.Render("←/→ switch table · q quit")
}

// Browse runs the interactive table browser until the user quits.
func Browse(net *network.Net) error {
	_, err := tea.NewProgram(NewBrowser(net)).Run()
	return err
}
