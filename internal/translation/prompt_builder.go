package translation

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs system and user prompts for locale translation.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const systemPrompt = `You are a professional Ukrainian localizer translating software UI strings from Russian.

Rules:
1. Translate Russian to Ukrainian.
2. Use the terminology from the provided glossary context exactly.
3. Preserve ALL mask tokens like __MASK0__, __MASK1__, etc. — copy them exactly as-is into your translation, in the position where they belong grammatically.
4. Preserve leading and trailing whitespace and punctuation.
5. Output ONLY the Ukrainian translation, nothing else.
6. Do NOT add explanations, notes, or extra text.
7. Keep UI text concise and natural in Ukrainian.
8. Maintain the same tone and register as the original.`

// GetSystemPrompt returns the system prompt for translation.
func (pb *PromptBuilder) GetSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt constructs the user prompt, prefixing any retrieved
// glossary/memory context.
func (pb *PromptBuilder) BuildUserPrompt(text, retrievedContext string) string {
	var sb strings.Builder

	if retrievedContext != "" {
		sb.WriteString(retrievedContext)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Text to translate:\n%s", text))

	return sb.String()
}
