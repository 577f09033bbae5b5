package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations return the embedded default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptAnswer turns retrieved advisory context into an answer.
	// The template expects %s for the context followed by %s for the question.
	PromptAnswer = "answer"
)

// DefaultAnswerPrompt is the built-in answer template.
// The first %s is the retrieved context, the second the question.
const DefaultAnswerPrompt = "Answer the user's question using the following agricultural advice:\n\n%s\n\nQuestion: %s"
