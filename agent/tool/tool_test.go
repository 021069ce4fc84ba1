package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
)

func TestExecuteReturnsErrorText(t *testing.T) {
	t.Parallel()

	tl := &Tool{
		Name: "broken",
		Run: func(context.Context, map[string]any) (any, error) {
			return nil, errors.New("boom")
		},
	}

	got := tl.Execute(context.Background(), nil)
	want := "Error executing broken: boom"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	t.Parallel()

	tl := &Tool{
		Name: "panicky",
		Run: func(context.Context, map[string]any) (any, error) {
			panic("unexpected")
		},
	}

	got := tl.Execute(context.Background(), nil)
	if !strings.HasPrefix(got, "Error executing panicky:") {
		t.Fatalf("Execute() = %q, want error text prefix", got)
	}
}

func TestExecuteSerializesStructuredResult(t *testing.T) {
	t.Parallel()

	tl := &Tool{
		Name: "structured",
		Run: func(context.Context, map[string]any) (any, error) {
			return map[string]any{"status": "ok"}, nil
		},
	}

	got := tl.Execute(context.Background(), nil)
	if got != `{"status":"ok"}` {
		t.Fatalf("Execute() = %q, want JSON object", got)
	}
}

func TestExecutePassesStringsThrough(t *testing.T) {
	t.Parallel()

	tl := &Tool{
		Name: "texty",
		Run: func(context.Context, map[string]any) (any, error) {
			return "plain text", nil
		},
	}

	if got := tl.Execute(context.Background(), nil); got != "plain text" {
		t.Fatalf("Execute() = %q, want plain text unchanged", got)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	mk := func(name string) *Tool {
		return &Tool{Name: name, Run: func(context.Context, map[string]any) (any, error) { return "", nil }}
	}

	_, err := NewRegistry(mk("dup"), mk("dup"))
	if !errors.Is(err, contractx.ErrDuplicateTool) {
		t.Fatalf("NewRegistry() error = %v, want ErrDuplicateTool", err)
	}
}

func TestRegistryOpenAIToolsPreservesOrder(t *testing.T) {
	t.Parallel()

	r := MustNewRegistry(NewEmailTool(), NewMeetingTool(), NewServiceTool())

	params := r.OpenAITools()
	if len(params) != 3 {
		t.Fatalf("OpenAITools() len = %d, want 3", len(params))
	}
	wantOrder := []string{ToolComposeInquiryEmail, ToolScheduleConsultationMeeting, ToolGetServiceDetails}
	for i, want := range wantOrder {
		if got := params[i].Function.Name; got != want {
			t.Errorf("OpenAITools()[%d].Name = %q, want %q", i, got, want)
		}
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	r := MustNewRegistry(NewServiceTool())

	_, matched := r.Dispatch(context.Background(), "no_such_tool", "{}")
	if matched {
		t.Fatal("Dispatch() matched an unregistered tool")
	}
}

func TestDispatchMalformedArguments(t *testing.T) {
	t.Parallel()

	r := MustNewRegistry(NewServiceTool())

	out, matched := r.Dispatch(context.Background(), ToolGetServiceDetails, "{not json")
	if !matched {
		t.Fatal("Dispatch() did not match registered tool")
	}
	if !strings.Contains(out, "invalid arguments") {
		t.Fatalf("Dispatch() = %q, want invalid-arguments text", out)
	}
}

func TestDispatchNilRegistry(t *testing.T) {
	t.Parallel()

	var r *Registry
	if r.Len() != 0 {
		t.Fatal("nil registry Len() != 0")
	}
	if _, matched := r.Dispatch(context.Background(), "x", ""); matched {
		t.Fatal("nil registry matched a tool")
	}
}
