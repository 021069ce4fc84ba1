package contract

// Variant identifies one agent flavor. Variants share the same dispatch core
// and differ in prompt, tool set, memory, and shortcut behavior.
type Variant string

const (
	VariantSimple     Variant = "simple"
	VariantFewShot    Variant = "fewshot"
	VariantEmail      Variant = "email"
	VariantScheduling Variant = "scheduling"
)

// Turn is one completed exchange: the user input and the final agent answer.
// Persisted conversation history is a flat list of these pairs.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
