package chat

import (
	contractx "github.com/maticstudio/chat-agent/agent/contract"
	promptx "github.com/maticstudio/chat-agent/agent/prompt"
	toolx "github.com/maticstudio/chat-agent/agent/tool"
	openaix "github.com/maticstudio/chat-agent/pkg/openaix"
)

// learnMorePhrasings trigger the canned overview on the scheduling variant
// without a model round trip.
var learnMorePhrasings = []string{
	"learn more about maticstudio",
	"learn more about matic studio",
	"tell me about maticstudio",
	"tell me about matic studio",
}

func agentConfig(cfg openaix.Config, variant contractx.Variant) Config {
	model, temp := cfg.ModelFor(string(variant))
	return Config{Model: model, Temperature: temp}
}

// NewSimple answers with the base prompt only: no tools, no memory.
func NewSimple(chat contractx.ChatService, cfg openaix.Config) (*Agent, error) {
	return New(contractx.VariantSimple, chat, promptx.Load().Base, agentConfig(cfg, contractx.VariantSimple))
}

// NewFewShot adds the static example dialogues to the enhanced prompt.
func NewFewShot(chat contractx.ChatService, cfg openaix.Config) (*Agent, error) {
	return New(contractx.VariantFewShot, chat, promptx.Load().Enhanced,
		agentConfig(cfg, contractx.VariantFewShot),
		WithExamples(examplePairs(promptx.FewShotExamples)...),
	)
}

// NewEmail composes inquiry emails: email tool, memory, and email examples.
func NewEmail(chat contractx.ChatService, cfg openaix.Config) (*Agent, error) {
	return New(contractx.VariantEmail, chat, promptx.Load().Email,
		agentConfig(cfg, contractx.VariantEmail),
		WithRegistry(toolx.MustNewRegistry(toolx.NewEmailTool())),
		WithMemory(),
		WithExamples(examplePairs(promptx.EmailExamples)...),
		withTraces(traceSet{
			Start:    "📧 **Composing professional inquiry email...**\n",
			Using:    "🔧 **Using %s** with client information",
			Done:     "✅ **Email composed successfully**\n",
			Finalize: "💭 **Finalizing email with additional guidance...**\n\n---\n",
		}),
	)
}

// NewScheduling books consultation meetings: meeting tool, memory, and the
// literal "learn more" shortcut.
func NewScheduling(chat contractx.ChatService, cfg openaix.Config, meetingOpts ...toolx.MeetingOption) (*Agent, error) {
	return New(contractx.VariantScheduling, chat, promptx.Load().Scheduling,
		agentConfig(cfg, contractx.VariantScheduling),
		WithRegistry(toolx.MustNewRegistry(toolx.NewMeetingTool(meetingOpts...))),
		WithMemory(),
		WithShortcut(learnMorePhrasings, promptx.Load().Overview),
		withTraces(traceSet{
			Start:    "📅 **Scheduling consultation meeting...**\n",
			Using:    "🔧 **Using %s** to schedule meeting",
			Done:     "✅ **Meeting scheduled successfully**\n",
			Finalize: "💭 **Finalizing meeting details...**\n\n---\n",
		}),
	)
}

func examplePairs(examples []promptx.Example) [][2]string {
	pairs := make([][2]string, 0, len(examples))
	for _, ex := range examples {
		pairs = append(pairs, [2]string{ex.User, ex.Assistant})
	}
	return pairs
}
