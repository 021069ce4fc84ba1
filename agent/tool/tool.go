package tool

import (
	"context"
	"encoding/json"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
)

// RunFunc executes a tool with already-decoded arguments. Validation failures
// and execution failures are reported through the error return; Execute turns
// them into text so they never abort a turn.
type RunFunc func(ctx context.Context, args map[string]any) (any, error)

// Tool is one named callable exposed to the model. Immutable after
// registration.
type Tool struct {
	Name        string
	Description string
	Parameters  shared.FunctionParameters
	Run         RunFunc
}

// Execute runs the tool and always returns text: structured results are
// JSON-serialized, plain strings pass through, and any error or panic becomes
// an error message identifying the tool. The model sees failures as ordinary
// tool output, not as a system fault.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("Error executing %s: %v", t.Name, r)
		}
	}()

	result, err := t.Run(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error executing %s: %v", t.Name, err)
	}

	if s, ok := result.(string); ok {
		return s
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("Error executing %s: %v", t.Name, err)
	}
	return string(encoded)
}

// Registry is an ordered, name-unique set of tools for one agent.
type Registry struct {
	tools map[string]*Tool
	order []string
}

func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]*Tool, len(tools)),
	}
	for _, t := range tools {
		if t == nil || t.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := r.tools[t.Name]; exists {
			return nil, fmt.Errorf("%w: %s", contractx.ErrDuplicateTool, t.Name)
		}
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r, nil
}

func MustNewRegistry(tools ...*Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Lookup(name string) (*Tool, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// OpenAITools renders the registry as chat-completion function schemas, in
// registration order.
func (r *Registry) OpenAITools() []openaisdk.ChatCompletionToolParam {
	if r == nil || len(r.order) == 0 {
		return nil
	}
	params := make([]openaisdk.ChatCompletionToolParam, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		params = append(params, openaisdk.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openaisdk.String(t.Description),
				Parameters:  t.Parameters,
			},
		})
	}
	return params
}

// Dispatch resolves a tool-call argument payload and executes the named tool.
// A malformed argument payload is reported as tool output text.
func (r *Registry) Dispatch(ctx context.Context, name, rawArgs string) (string, bool) {
	t, ok := r.Lookup(name)
	if !ok {
		return "", false
	}

	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return fmt.Sprintf("Error executing %s: invalid arguments: %v", name, err), true
		}
	}
	return t.Execute(ctx, args), true
}
