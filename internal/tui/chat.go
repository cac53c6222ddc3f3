package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	"nathanbeddoewebdev/infrachat/internal/provision/services"
	"nathanbeddoewebdev/infrachat/internal/tui/components"
	"nathanbeddoewebdev/infrachat/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	idlePlaceholder = "Describe what you want to provision..."
	busyPlaceholder = "Provisioning in progress..."

	// splitMinWidth is the narrowest window that shows the transcript and
	// the terminal side by side.
	splitMinWidth = 100
)

// bannerLines open every terminal session.
var bannerLines = []domain.TraceLine{
	{Kind: domain.TraceCommand, Text: "Initializing AI provisioning assistant..."},
	{Kind: domain.TraceCommand, Text: "Connected to provisioning backend"},
	{Kind: domain.TraceCommand, Text: "Ready to provision resources"},
}

// Submitter runs one provisioning chat turn. *services.Service implements it.
type Submitter interface {
	Submit(ctx context.Context, utterance string, declared domain.ResourceType) (*domain.Response, error)
}

// ChatOptions configures RunChat.
type ChatOptions struct {
	// ModelName is shown on the right of the header.
	ModelName string

	// OnTurn, when set, is called from the submitting goroutine after every
	// turn, before the result reaches the UI.
	OnTurn func(ctx context.Context, turn Turn)
}

// Turn is one completed chat submission.
type Turn struct {
	Utterance string
	Started   time.Time
	Response  *domain.Response
	Err       error
}

// --- Messages ---

type submitResultMsg struct {
	resp *domain.Response
	err  error
}

// --- Transcript ---

type chatRole int

const (
	roleUser chatRole = iota
	roleAssistant
)

type chatMessage struct {
	role    chatRole
	text    string
	isError bool
	at      time.Time

	// resourceStatus is the status of a resource returned with the reply.
	resourceStatus string
}

// --- Chat model ---

type chatModel struct {
	ctx          context.Context
	submitter    Submitter
	resourceType domain.ResourceType
	opts         ChatOptions

	messages   []chatMessage
	trace      []domain.TraceLine
	exampleIdx int

	input      textinput.Model
	spinner    spinner.Model
	transcript viewport.Model
	terminal   viewport.Model

	// busy is set while a submission is in flight. Further submissions are
	// ignored until it completes.
	busy bool

	status  string
	isError bool

	width  int
	height int
}

func newChatModel(ctx context.Context, submitter Submitter, rt domain.ResourceType, opts ChatOptions) chatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	ti := textinput.New()
	ti.Placeholder = idlePlaceholder
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	return chatModel{
		ctx:          ctx,
		submitter:    submitter,
		resourceType: rt,
		opts:         opts,
		trace:        append([]domain.TraceLine(nil), bannerLines...),
		input:        ti,
		spinner:      s,
		transcript:   viewport.New(0, 0),
		terminal:     viewport.New(0, 0),
	}
}

// RunChat starts the full-window provisioning chat for one resource type.
// It returns when the user quits or ctx is cancelled.
func RunChat(ctx context.Context, submitter Submitter, rt domain.ResourceType, opts ChatOptions) error {
	m := newChatModel(ctx, submitter, rt, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitResultMsg:
		m = m.handleResult(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.busy {
			return m, nil
		}
		m.messages = append(m.messages, chatMessage{role: roleUser, text: text, at: time.Now()})
		m.input.Reset()
		m.input.Placeholder = busyPlaceholder
		m.busy = true
		m.status = ""
		m.isError = false
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, m.submit(text))

	case "tab":
		if m.busy || len(services.ExamplePrompts) == 0 {
			return m, nil
		}
		m.input.SetValue(services.ExamplePrompts[m.exampleIdx%len(services.ExamplePrompts)])
		m.input.CursorEnd()
		m.exampleIdx++
		return m, nil

	case "ctrl+r":
		if m.busy {
			return m, nil
		}
		m.trace = append([]domain.TraceLine(nil), bannerLines...)
		m.status = ""
		m.isError = false
		m.refresh()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) submit(utterance string) tea.Cmd {
	ctx, submitter, rt, onTurn := m.ctx, m.submitter, m.resourceType, m.opts.OnTurn
	return func() tea.Msg {
		start := time.Now()
		resp, err := submitter.Submit(ctx, utterance, rt)
		if onTurn != nil {
			onTurn(ctx, Turn{Utterance: utterance, Started: start, Response: resp, Err: err})
		}
		return submitResultMsg{resp: resp, err: err}
	}
}

func (m chatModel) handleResult(msg submitResultMsg) chatModel {
	m.busy = false
	m.input.Placeholder = idlePlaceholder

	if msg.resp != nil {
		m.trace = append(m.trace, msg.resp.Trace...)
	}

	reply, isErr := assistantReply(msg.resp, msg.err)
	answer := chatMessage{role: roleAssistant, text: reply, isError: isErr, at: time.Now()}
	if !isErr && msg.resp.Resource != nil {
		answer.resourceStatus = msg.resp.Resource.Status
	}
	m.messages = append(m.messages, answer)

	switch {
	case isErr:
		m.status = "Check the terminal for details"
		m.isError = true
	case msg.resp.Resource != nil:
		m.status = provisionedStatus(m.resourceType, msg.resp.Resource)
		m.isError = false
	}

	m.refresh()
	return m
}

// assistantReply picks the transcript text for a finished turn and reports
// whether it describes a failure.
func assistantReply(resp *domain.Response, err error) (string, bool) {
	if resp == nil {
		if err != nil {
			return err.Error(), true
		}
		return "No response", true
	}
	failed := err != nil || !resp.Success
	if resp.AIResponse != "" {
		return resp.AIResponse, failed
	}
	if resp.Error != "" {
		return resp.Error, true
	}
	if err != nil {
		return err.Error(), true
	}
	return resp.Message, failed
}

func provisionedStatus(rt domain.ResourceType, rec *domain.ResourceRecord) string {
	label := rec.Name
	if label == "" {
		label = rec.ID
	}
	if rec.Status == "" {
		return fmt.Sprintf("%s %s provisioned", rt.Title(), label)
	}
	return fmt.Sprintf("%s %s provisioned (%s)", rt.Title(), label, rec.Status)
}

// --- Layout ---

func (m chatModel) chromeHeight() int {
	header := components.Header(m.width, m.breadcrumb(), m.opts.ModelName)
	footer := components.Footer(m.width, m.footerBindings())
	// input line, status line and pane borders
	return lipgloss.Height(header) + lipgloss.Height(footer) + 2 + 2
}

func (m *chatModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyH := max(m.height-m.chromeHeight(), 3)

	if m.width >= splitMinWidth {
		left := m.width * 3 / 5
		m.transcript.Width = left - 2
		m.transcript.Height = bodyH
		m.terminal.Width = m.width - left - 4
		m.terminal.Height = bodyH
	} else {
		top := bodyH / 2
		m.transcript.Width = m.width - 2
		m.transcript.Height = top
		m.terminal.Width = m.width - 4
		m.terminal.Height = max(bodyH-top-2, 1)
	}
	m.input.Width = max(m.width-8, 10)
	m.refresh()
}

// refresh re-renders both panes and keeps them scrolled to the bottom.
func (m *chatModel) refresh() {
	m.transcript.SetContent(m.renderTranscript(m.transcript.Width))
	m.transcript.GotoBottom()
	m.terminal.SetContent(renderTrace(m.trace, m.terminal.Width))
	m.terminal.GotoBottom()
}

func (m chatModel) breadcrumb() string {
	return "provision " + m.resourceType.Plural()
}

func (m chatModel) footerBindings() []components.KeyBinding {
	if m.busy {
		return []components.KeyBinding{
			{Key: "pgup/pgdn", Desc: "scroll"},
			{Key: "esc", Desc: "quit"},
		}
	}
	return []components.KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "tab", Desc: "example"},
		{Key: "ctrl+r", Desc: "clear terminal"},
		{Key: "esc", Desc: "quit"},
	}
}

// --- Rendering ---

func (m chatModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, m.breadcrumb(), m.opts.ModelName)
	footer := components.Footer(m.width, m.footerBindings())

	transcript := lipgloss.NewStyle().Padding(0, 1).Render(m.transcript.View())
	terminal := styles.TerminalPane.Render(m.terminal.View())

	var body string
	if m.width >= splitMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, transcript, terminal)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, transcript, terminal)
	}

	inputLine := lipgloss.NewStyle().Padding(0, 2).Render(m.input.View())
	if m.busy {
		inputLine = lipgloss.NewStyle().Padding(0, 2).Render(
			m.spinner.View() + " " + styles.MutedText.Render("Processing..."))
	}

	statusBar := components.StatusBar(m.width, m.status, m.isError)
	if statusBar == "" {
		statusBar = " "
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, inputLine, statusBar, footer)
}

func (m chatModel) renderTranscript(width int) string {
	if width <= 0 {
		return ""
	}
	if len(m.messages) == 0 {
		return m.renderWelcome(width)
	}

	bubbleWidth := max(width*4/5, 20)
	blocks := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		stamp := styles.MutedText.Render(msg.at.Format("15:04"))

		var bubble string
		switch {
		case msg.role == roleUser:
			bubble = styles.UserBubble.MaxWidth(bubbleWidth).Width(min(lipgloss.Width(msg.text)+2, bubbleWidth)).Render(msg.text)
			bubble = lipgloss.PlaceHorizontal(width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, bubble, stamp))
		case msg.isError:
			bubble = styles.AssistantBubble.BorderForeground(styles.Red).Width(bubbleWidth).Render(msg.text)
			bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
		default:
			if msg.resourceStatus != "" {
				stamp += "  " + styles.StatusIndicator(msg.resourceStatus)
			}
			bubble = styles.AssistantBubble.Width(bubbleWidth).Render(msg.text)
			bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
		}
		blocks = append(blocks, bubble)
	}
	return strings.Join(blocks, "\n\n")
}

func (m chatModel) renderWelcome(width int) string {
	lines := []string{
		styles.Title.Render("Provision a new " + m.resourceType.Title()),
		styles.MutedText.Render("Describe what you'd like to create, and I'll help you provision it."),
		"",
		styles.Label.Render("Try these commands:"),
	}
	for _, p := range services.ExamplePrompts {
		lines = append(lines, "  "+styles.AccentText.Render(p))
	}
	lines = append(lines, "", styles.MutedText.Render("Press tab to use an example."))

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// renderTrace renders terminal lines with their kind prefix, truncated to
// width.
func renderTrace(lines []domain.TraceLine, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Kind == domain.TraceBlank || (l.Text == "" && l.Kind != domain.TraceCommand) {
			out = append(out, "")
			continue
		}
		text := ansi.Truncate(l.Kind.Prefix()+l.Text, width, "…")
		out = append(out, styles.TraceStyle(string(l.Kind)).Render(text))
	}
	return strings.Join(out, "\n")
}
