package contract

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatService is the remote model capability. *openai.ChatCompletionService
// satisfies it; tests substitute fakes.
type ChatService interface {
	New(ctx context.Context, body openaisdk.ChatCompletionNewParams, opts ...option.RequestOption) (*openaisdk.ChatCompletion, error)
}
