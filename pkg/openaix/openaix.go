package openaix

import (
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config carries OpenAI connection settings plus per-variant model and
// temperature overrides. A negative variant temperature means "use the
// default".
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	EmailModel            string  `envconfig:"EMAIL_MODEL" split_words:"true"`
	SchedulingModel       string  `envconfig:"SCHEDULING_MODEL" split_words:"true"`
	EmailTemperature      float64 `envconfig:"EMAIL_TEMPERATURE" split_words:"true" default:"-1"`
	SchedulingTemperature float64 `envconfig:"SCHEDULING_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("openai api key is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("default model is required")
	}
	return nil
}

// ModelFor resolves the model name and temperature for one agent variant.
func (c Config) ModelFor(variant string) (string, float64) {
	model := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch variant {
	case "email":
		if v := strings.TrimSpace(c.EmailModel); v != "" {
			model = v
		}
		if c.EmailTemperature >= 0 {
			temp = c.EmailTemperature
		}
	case "scheduling":
		if v := strings.TrimSpace(c.SchedulingModel); v != "" {
			model = v
		}
		if c.SchedulingTemperature >= 0 {
			temp = c.SchedulingTemperature
		}
	}
	return model, temp
}

// NewClient builds an OpenAI SDK client. Returns nil when no API key is set
// so callers can fail fast before any request is attempted.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
