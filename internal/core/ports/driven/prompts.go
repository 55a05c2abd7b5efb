package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptClassify labels a query with one category token.
	// The prompt template expects a %s placeholder for the query.
	PromptClassify = "classify"

	// PromptFactCheckSystem sets the reconciler's validation persona.
	// This prompt has no format placeholders.
	PromptFactCheckSystem = "fact_check_system"

	// PromptFactCheck carries the claim and evidence to be checked.
	// The template expects %s (query) and %s (evidence block) placeholders.
	PromptFactCheck = "fact_check"

	// PromptComposeSystem sets the composer's grounding rules.
	// This prompt has no format placeholders.
	PromptComposeSystem = "compose_system"

	// PromptCompose carries the question, analysis and sources.
	// The template expects %s (query), %s (analysis) and %s (sources).
	PromptCompose = "compose"
)
