package chat

import (
	"context"
	"fmt"
	"iter"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
	toolx "github.com/maticstudio/chat-agent/agent/tool"
)

// Config carries the per-agent model settings resolved by pkg/openaix.
type Config struct {
	Model       string
	Temperature float64
}

// traceSet holds the human-readable status lines emitted around tool
// dispatch. Pure observability; never control data.
type traceSet struct {
	Start    string
	Using    string // fmt verb receives the tool name
	Done     string
	Finalize string
}

var defaultTraces = traceSet{
	Start:    "🔧 **Working on it...**\n",
	Using:    "🔧 **Using %s**",
	Done:     "✅ **Done**\n",
	Finalize: "💭 **Finalizing...**\n\n---\n",
}

// Agent runs one request/response cycle against the remote model: prompt
// assembly, optional tool dispatch, and memory accumulation. One Agent owns
// one conversation; create one per session.
type Agent struct {
	variant      contractx.Variant
	chat         contractx.ChatService
	model        string
	temperature  float64
	systemPrompt string
	examples     []examplePair
	registry     *toolx.Registry
	memory       *Memory
	showTrace    bool
	traces       traceSet
	shortcuts    map[string]string
	log          zerolog.Logger
}

type examplePair struct {
	user      string
	assistant string
}

// Option customizes an Agent at construction.
type Option func(*Agent)

// WithMemory enables conversation memory for the agent's lifetime.
func WithMemory() Option {
	return func(a *Agent) {
		a.memory = NewMemory()
	}
}

// WithRegistry exposes the given tool set to the model.
func WithRegistry(r *toolx.Registry) Option {
	return func(a *Agent) {
		a.registry = r
	}
}

// WithExamples replays static few-shot pairs ahead of the conversation.
func WithExamples(pairs ...[2]string) Option {
	return func(a *Agent) {
		for _, p := range pairs {
			a.examples = append(a.examples, examplePair{user: p[0], assistant: p[1]})
		}
	}
}

// WithShortcut registers a literal-match canned reply. Matching is
// case-insensitive after trimming and bypasses the model entirely.
func WithShortcut(phrasings []string, reply string) Option {
	return func(a *Agent) {
		if a.shortcuts == nil {
			a.shortcuts = make(map[string]string, len(phrasings))
		}
		for _, p := range phrasings {
			a.shortcuts[normalizeShortcut(p)] = reply
		}
	}
}

// withTraces overrides the tool-dispatch status lines.
func withTraces(t traceSet) Option {
	return func(a *Agent) {
		a.traces = t
	}
}

// New builds an agent. The chat service is required; tests pass fakes.
func New(variant contractx.Variant, chat contractx.ChatService, systemPrompt string, cfg Config, opts ...Option) (*Agent, error) {
	if chat == nil {
		return nil, fmt.Errorf("chat service is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}

	a := &Agent{
		variant:      variant,
		chat:         chat,
		model:        strings.TrimSpace(cfg.Model),
		temperature:  cfg.Temperature,
		systemPrompt: systemPrompt,
		showTrace:    true,
		traces:       defaultTraces,
		log:          log.With().Str("agent", string(variant)).Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Agent) Variant() contractx.Variant {
	return a.variant
}

// MemoryLen reports the number of stored memory entries (two per turn).
func (a *Agent) MemoryLen() int {
	return a.memory.Len()
}

// History returns a copy of the conversation memory.
func (a *Agent) History() []contractx.Turn {
	return a.memory.Snapshot()
}

// ResetMemory clears the conversation history. The next turn replays no
// prior context to the model.
func (a *Agent) ResetMemory() {
	a.memory.Reset()
}

// Process runs one turn and returns the final answer text, optionally
// prefixed with tool-dispatch status lines. Remote-model failures propagate
// wrapped in ErrModelInvoke; tool failures never do.
func (a *Agent) Process(ctx context.Context, userInput string) (string, error) {
	if reply, ok := a.shortcutReply(userInput); ok {
		return reply, nil
	}
	if strings.TrimSpace(userInput) == "" {
		return "", contractx.ErrEmptyInput
	}

	trace, finalContent, err := a.runTurn(ctx, userInput)
	if err != nil {
		return "", err
	}

	a.memory.AppendTurn(userInput, finalContent)

	if a.showTrace && len(trace) > 0 {
		return strings.Join(trace, "\n") + "\n" + finalContent, nil
	}
	return finalContent, nil
}

// ProcessStream runs the same turn as Process but yields the answer
// incrementally: tool status lines first, then the final text split on
// whitespace with single-space separators. The split is presentation pacing,
// not true incremental generation. Memory is updated only when the sequence
// is consumed to the end.
func (a *Agent) ProcessStream(ctx context.Context, userInput string) (iter.Seq[string], error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, contractx.ErrEmptyInput
	}

	trace, finalContent, err := a.runTurn(ctx, userInput)
	if err != nil {
		return nil, err
	}

	seq := func(yield func(string) bool) {
		for _, line := range trace {
			if !yield(line + "\n") {
				return
			}
		}
		for i, word := range strings.Fields(finalContent) {
			if i > 0 {
				if !yield(" ") {
					return
				}
			}
			if !yield(word) {
				return
			}
		}
		a.memory.AppendTurn(userInput, finalContent)
	}
	return seq, nil
}

// runTurn performs prompt assembly, the first model call, the optional tool
// dispatch loop, and the follow-up call. Returns the trace lines and the
// final answer.
func (a *Agent) runTurn(ctx context.Context, userInput string) ([]string, string, error) {
	messages := a.assembleMessages(userInput)

	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(a.model),
		Messages:    messages,
		Temperature: openaisdk.Float(a.temperature),
	}
	if a.registry.Len() > 0 {
		params.Tools = a.registry.OpenAITools()
	}

	completion, err := a.chat.New(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return nil, "", contractx.ErrEmptyCompletion
	}

	responseMessage := completion.Choices[0].Message
	if len(responseMessage.ToolCalls) == 0 {
		return nil, responseMessage.Content, nil
	}

	trace := []string{a.traces.Start}
	messages = append(messages, responseMessage.ToParam())

	for _, call := range responseMessage.ToolCalls {
		name := call.Function.Name
		trace = append(trace, fmt.Sprintf(a.traces.Using, name))

		result, matched := a.registry.Dispatch(ctx, name, call.Function.Arguments)
		if !matched {
			// The model asked for a tool we never offered. Answer the call
			// anyway so the follow-up request stays well formed.
			a.log.Warn().Str("tool", name).Msg("model requested unknown tool")
			result = fmt.Sprintf("Error executing %s: tool not available", name)
		} else {
			trace = append(trace, a.traces.Done)
		}
		messages = append(messages, openaisdk.ToolMessage(result, call.ID))
	}

	trace = append(trace, a.traces.Finalize)

	// Second call narrates the tool results; no tools offered this time.
	finalCompletion, err := a.chat.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(a.model),
		Messages:    messages,
		Temperature: openaisdk.Float(a.temperature),
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if finalCompletion == nil || len(finalCompletion.Choices) == 0 {
		return nil, "", contractx.ErrEmptyCompletion
	}

	return trace, finalCompletion.Choices[0].Message.Content, nil
}

// assembleMessages builds the ordered prompt: system instruction, static
// few-shot pairs, full memory snapshot, then the new input. Order is
// semantically meaningful; it is replayed verbatim to the model.
func (a *Agent) assembleMessages(userInput string) []openaisdk.ChatCompletionMessageParamUnion {
	history := a.memory.Snapshot()

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2+2*len(a.examples)+len(history))
	messages = append(messages, openaisdk.SystemMessage(a.systemPrompt))

	for _, ex := range a.examples {
		messages = append(messages,
			openaisdk.UserMessage(ex.user),
			openaisdk.AssistantMessage(ex.assistant),
		)
	}

	for _, turn := range history {
		switch turn.Role {
		case "assistant":
			messages = append(messages, openaisdk.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openaisdk.UserMessage(turn.Content))
		}
	}

	return append(messages, openaisdk.UserMessage(userInput))
}

func (a *Agent) shortcutReply(userInput string) (string, bool) {
	if len(a.shortcuts) == 0 {
		return "", false
	}
	reply, ok := a.shortcuts[normalizeShortcut(userInput)]
	return reply, ok
}

func normalizeShortcut(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
