package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	minWidth       = 5
	prefixBarWidth = 20

	inputPanelMinHeight   = 5
	resultPanelMinHeight  = 7
	detailsPanelMinHeight = 3

	cursor = "█"
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	if width < minWidth {
		width = minWidth
	}

	inputHeight, resultHeight, detailsHeight := panelHeights(height)

	inputStyle := panelStyle
	if m.mode != ModeIdle {
		inputStyle = activePanelStyle
	}

	var panels []string
	for _, p := range []string{
		renderPanel(inputStyle, m.inputTitle(), m.inputBody(width-inputStyle.GetHorizontalFrameSize()), width, inputHeight),
		renderPanel(panelStyle, "Subnet Calculation", m.resultBody(), width, resultHeight),
		renderPanel(panelStyle, "Details", m.detailsBody(), width, detailsHeight),
	} {
		if p != "" {
			panels = append(panels, p)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

// panelHeights splits the terminal rows 30% / 30% / remainder. The input
// panel is sized first and the results next; Details is dropped once it
// falls below its minimum, so the total always equals height.
func panelHeights(height int) (input, result, details int) {
	input = min(max(height*3/10, inputPanelMinHeight), height)
	result = min(max(height*3/10, resultPanelMinHeight), height-input)
	details = height - input - result
	if details < detailsPanelMinHeight {
		result += details
		details = 0
	}
	return input, result, details
}

// inputTitle is the prompt shown above the input panel for the current mode
func (m Model) inputTitle() string {
	switch m.mode {
	case ModeEditingIP:
		return "Enter IP Address:"
	case ModeEditingSubnet:
		return "Enter Subnet Mask:"
	case ModeIdle:
		return "Press 'i' to Input IP, 's' for Subnet"
	}
	return ""
}

// inputBody renders both buffers within width cells. A buffer too long to
// fit shows its tail so the cursor stays visible.
func (m Model) inputBody(width int) string {
	var s strings.Builder

	s.WriteString(inputFieldStyle.Render("IP: ") + inputTextStyle.Render(tail(m.ipText, width-len("IP: ")-1)))
	if m.mode == ModeEditingIP {
		s.WriteString(cursor)
	}
	s.WriteString("\n")

	s.WriteString(inputFieldStyle.Render("Subnet: ") + inputTextStyle.Render(tail(m.subnetText, width-len("Subnet: ")-1)))
	if m.mode == ModeEditingSubnet {
		s.WriteString(cursor)
	}

	return s.String()
}

// tail keeps the last width cells of text, marking the cut with "…".
func tail(text string, width int) string {
	w := ansi.StringWidth(text)
	if width < 2 || w <= width {
		return text
	}
	return "…" + ansi.TruncateLeft(text, w-width+1, "")
}

// resultBody renders the four calculated values, or the 0.0.0.0 / 0
// placeholders before the first successful calculation.
func (m Model) resultBody() string {
	network, broadcast := "0.0.0.0", "0.0.0.0"
	subnets, hosts := "0", "0"
	render := placeholderStyle.Render

	if r := m.result; r != nil {
		network = r.Network.String()
		broadcast = r.Broadcast.String()
		subnets = strconv.FormatUint(r.SubnetCount, 10)
		hosts = strconv.FormatUint(r.HostCount, 10)
		render = valueStyle.Render
	}

	lines := []string{
		labelStyle.Render("Network Address: ") + render(network),
		labelStyle.Render("Broadcast Address: ") + render(broadcast),
		labelStyle.Render("Subnet Count: ") + render(subnets),
		labelStyle.Render("Host Count: ") + render(hosts),
	}
	return strings.Join(lines, "\n")
}

func (m Model) detailsBody() string {
	var s strings.Builder

	if m.calcErr != nil {
		s.WriteString(errorStyle.Render("⚠ "+m.calcErr.Error()) + "\n")
	}

	if r := m.result; r != nil {
		s.WriteString(labelStyle.Render("Prefix Length: ") +
			valueStyle.Render(fmt.Sprintf("/%-3d", r.Ones)) +
			m.prefixBar.ViewAs(float64(r.Ones)/32) + "\n")
		s.WriteString(labelStyle.Render("Wildcard Mask: ") + highlightStyle.Render(r.Wildcard.String()) + "\n")

		if r.Contiguous {
			s.WriteString(labelStyle.Render("CIDR: ") + highlightStyle.Render(r.CIDR()) + "\n")
			if r.HasRange {
				s.WriteString(labelStyle.Render("Usable Range: ") +
					highlightStyle.Render(r.FirstHost.String()+" - "+r.LastHost.String()) + "\n")
			} else {
				s.WriteString(labelStyle.Render("Usable Range: ") + placeholderStyle.Render("none") + "\n")
			}
		} else {
			s.WriteString(warningStyle.Render("Mask is not contiguous, counts use its set bits") + "\n")
		}
	} else {
		s.WriteString(helpStyle.Render("Type an address and mask, then press Enter to calculate") + "\n")
	}

	s.WriteString("\n" + m.help.View(m.keys))

	return s.String()
}

// renderPanel draws a bordered panel of exactly width x height cells, with
// the title on the first line. Body lines that do not fit are dropped and
// long lines are cut, never wrapped. Panels too short for a border keep
// their title as plain lines.
func renderPanel(style lipgloss.Style, title, body string, width, height int) string {
	if height <= 0 {
		return ""
	}

	lines := append([]string{titleStyle.Render(title)}, strings.Split(body, "\n")...)

	innerHeight := height - style.GetVerticalFrameSize()
	if innerHeight < 1 {
		lines = lines[:min(height, len(lines))]
		for i := range lines {
			lines[i] = ansi.Truncate(lines[i], width, "…")
		}
		return strings.Join(lines, "\n")
	}

	innerWidth := max(width-style.GetHorizontalBorderSize(), 1)
	contentWidth := max(innerWidth-style.GetHorizontalPadding(), 1)

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], contentWidth, "…")
	}

	return style.
		Width(innerWidth).
		Height(innerHeight).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
