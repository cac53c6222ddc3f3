package styles

import "github.com/charmbracelet/lipgloss"

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for field values in detail views.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for help text, hints, and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText is for highlighted interactive elements.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	// ErrorText is for error messages.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// SuccessText is for success messages.
	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// --- Status badges ---

// StatusStyle returns the style for a provisioned resource status value.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "available", "running", "active":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "creating", "pending", "provisioning", "modifying":
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	case "deleting", "stopping":
		return lipgloss.NewStyle().Foreground(Yellow)
	case "failed", "error", "stopped":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// StatusIndicator returns a small dot + status text with appropriate color.
func StatusIndicator(status string) string {
	style := StatusStyle(status)
	dot := style.Render("●")
	text := style.Render(status)
	return dot + " " + text
}

// --- Layout components ---

var (
	// Border is the default subtle border style.
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// --- Key binding hint styles ---

var (
	// KeyStyle is used for key labels in the footer (e.g. "q").
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	// KeyDescStyle is used for key descriptions in the footer (e.g. "quit").
	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// KeySepStyle is used for separators between key bindings.
	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// --- Chat transcript styles ---

var (
	// UserBubble renders messages typed by the user.
	UserBubble = lipgloss.NewStyle().
			Foreground(White).
			Background(DarkBlue).
			Padding(0, 1)

	// AssistantBubble renders assistant replies.
	AssistantBubble = lipgloss.NewStyle().
			Foreground(White).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(DimBlue).
			PaddingLeft(1)

	// TerminalPane frames the trace log.
	TerminalPane = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// TraceStyle returns the style for a trace line kind.
func TraceStyle(kind string) lipgloss.Style {
	switch kind {
	case "command":
		return lipgloss.NewStyle().Foreground(Blue)
	case "success":
		return lipgloss.NewStyle().Foreground(Green)
	case "error":
		return lipgloss.NewStyle().Foreground(Red)
	case "header":
		return lipgloss.NewStyle().Foreground(White).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}
