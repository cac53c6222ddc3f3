package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	"nathanbeddoewebdev/infrachat/internal/provision/services"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []string
	resp  *domain.Response
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, utterance string, _ domain.ResourceType) (*domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, utterance)
	return f.resp, f.err
}

func sized(m chatModel) chatModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(chatModel)
}

func press(m chatModel, msg tea.KeyMsg) (chatModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(chatModel), cmd
}

func typeText(m chatModel, text string) chatModel {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestChat_EnterStartsSubmission(t *testing.T) {
	sub := &fakeSubmitter{resp: &domain.Response{}}
	m := sized(newChatModel(context.Background(), sub, domain.ResourceDatabase, ChatOptions{}))

	m = typeText(m, "Create a postgres database")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.busy {
		t.Fatal("expected model to be busy after submitting")
	}
	if cmd == nil {
		t.Fatal("expected a command to be returned")
	}
	if len(m.messages) != 1 || m.messages[0].role != roleUser {
		t.Fatalf("expected one user message, got %+v", m.messages)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input to be cleared, got %q", m.input.Value())
	}
}

func TestChat_IgnoresSubmissionWhileBusy(t *testing.T) {
	sub := &fakeSubmitter{resp: &domain.Response{}}
	m := sized(newChatModel(context.Background(), sub, domain.ResourceDatabase, ChatOptions{}))

	m = typeText(m, "first")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = typeText(m, "second")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command while a submission is in flight")
	}
	if len(m.messages) != 1 {
		t.Errorf("expected 1 message, got %d", len(m.messages))
	}
	if m.input.Value() != "" {
		t.Errorf("expected typing to be ignored while busy, got %q", m.input.Value())
	}
}

func TestChat_EmptyInputIsIgnored(t *testing.T) {
	m := sized(newChatModel(context.Background(), &fakeSubmitter{}, domain.ResourceServer, ChatOptions{}))

	m = typeText(m, "   ")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil || m.busy || len(m.messages) != 0 {
		t.Errorf("expected blank input to be ignored, busy=%v messages=%d", m.busy, len(m.messages))
	}
}

func TestChat_SubmitCallsOnTurn(t *testing.T) {
	resp := &domain.Response{Result: domain.Result{Success: true}, AIResponse: "done"}
	sub := &fakeSubmitter{resp: resp}

	var gotUtterance string
	var gotResp *domain.Response
	opts := ChatOptions{OnTurn: func(_ context.Context, turn Turn) {
		gotUtterance = turn.Utterance
		gotResp = turn.Response
	}}
	m := newChatModel(context.Background(), sub, domain.ResourceServer, opts)

	msg := m.submit("Make me an Ubuntu server")()

	result, ok := msg.(submitResultMsg)
	if !ok {
		t.Fatalf("expected submitResultMsg, got %T", msg)
	}
	if result.resp != resp {
		t.Error("expected the submitter's response to be forwarded")
	}
	if gotUtterance != "Make me an Ubuntu server" || gotResp != resp {
		t.Errorf("expected OnTurn to see the turn, got %q %v", gotUtterance, gotResp)
	}
	if len(sub.calls) != 1 {
		t.Errorf("expected 1 submit call, got %d", len(sub.calls))
	}
}

func TestChat_ResultAppendsReplyAndTrace(t *testing.T) {
	m := sized(newChatModel(context.Background(), &fakeSubmitter{}, domain.ResourceDatabase, ChatOptions{}))
	m.busy = true

	resp := &domain.Response{
		Result: domain.Result{
			Success:  true,
			Resource: &domain.ResourceRecord{ID: "db-1", Name: "orders", Status: "creating"},
		},
		AIResponse: "I've created your database. Successfully created database: orders",
		Trace: []domain.TraceLine{
			{Kind: domain.TraceSuccess, Text: "SUCCESS: Database provisioned!"},
		},
	}
	updated, _ := m.Update(submitResultMsg{resp: resp})
	m = updated.(chatModel)

	if m.busy {
		t.Error("expected busy to be cleared")
	}
	if len(m.messages) != 1 || m.messages[0].text != resp.AIResponse || m.messages[0].isError {
		t.Fatalf("unexpected transcript: %+v", m.messages)
	}
	if m.messages[0].resourceStatus != "creating" {
		t.Errorf("expected resource status %q, got %q", "creating", m.messages[0].resourceStatus)
	}
	if len(m.trace) != len(bannerLines)+1 {
		t.Errorf("expected %d trace lines, got %d", len(bannerLines)+1, len(m.trace))
	}
	if m.status != "Database orders provisioned (creating)" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestChat_TabCyclesExamples(t *testing.T) {
	m := sized(newChatModel(context.Background(), &fakeSubmitter{}, domain.ResourceDatabase, ChatOptions{}))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != services.ExamplePrompts[0] {
		t.Errorf("expected %q, got %q", services.ExamplePrompts[0], m.input.Value())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != services.ExamplePrompts[1] {
		t.Errorf("expected %q, got %q", services.ExamplePrompts[1], m.input.Value())
	}
}

func TestChat_WelcomeListsExamples(t *testing.T) {
	m := sized(newChatModel(context.Background(), &fakeSubmitter{}, domain.ResourceStorage, ChatOptions{}))

	view := m.View()
	if !strings.Contains(view, "Try these commands:") {
		t.Error("expected example prompt heading in empty chat")
	}
	if !strings.Contains(view, services.ExamplePrompts[0]) {
		t.Errorf("expected %q in empty chat", services.ExamplePrompts[0])
	}
}

func TestAssistantReply(t *testing.T) {
	tests := []struct {
		name    string
		resp    *domain.Response
		err     error
		want    string
		wantErr bool
	}{
		{
			name: "success",
			resp: &domain.Response{Result: domain.Result{Success: true}, AIResponse: "I've created your server."},
			want: "I've created your server.",
		},
		{
			name:    "mismatch",
			resp:    &domain.Response{Result: domain.Result{Error: "Invalid resource type."}, AIResponse: "I can only create servers on this page."},
			err:     domain.ErrIntentMismatch,
			want:    "I can only create servers on this page.",
			wantErr: true,
		},
		{
			name:    "model failure",
			resp:    &domain.Response{Result: domain.Result{Error: "Failed to process request"}},
			err:     domain.ErrUpstreamModel,
			want:    "Failed to process request",
			wantErr: true,
		},
		{
			name:    "no response",
			err:     errors.New("boom"),
			want:    "boom",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isErr := assistantReply(tt.resp, tt.err)
			if got != tt.want || isErr != tt.wantErr {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantErr, got, isErr)
			}
		})
	}
}

func TestRenderTrace_Prefixes(t *testing.T) {
	lines := []domain.TraceLine{
		{Kind: domain.TraceCommand, Text: "User: hi"},
		{Kind: domain.TraceBlank},
		{Kind: domain.TraceError, Text: "ERROR: Failed to provision server"},
	}

	out := strings.Split(renderTrace(lines, 80), "\n")
	if len(out) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(out))
	}
	if !strings.Contains(out[0], "$ User: hi") {
		t.Errorf("expected command prefix, got %q", out[0])
	}
	if out[1] != "" {
		t.Errorf("expected blank line, got %q", out[1])
	}
	if !strings.Contains(out[2], "✗ ERROR: Failed to provision server") {
		t.Errorf("expected error prefix, got %q", out[2])
	}
}
