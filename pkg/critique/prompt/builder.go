package prompt

import (
	"fmt"
	"strings"

	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/entity"
	"creative-critique-be/pkg/llm"
)

// AnalysisParts assembles the first-turn request: one leading text part that
// frames the critic persona, the artist's context, and the review instruction,
// followed by the marshaled file parts in upload order.
func AnalysisParts(persona, contextPrompt string, fileParts []llm.Part) []llm.Part {
	var b strings.Builder
	b.WriteString(persona)
	if strings.TrimSpace(contextPrompt) != "" {
		b.WriteString("\n\nContext from the artist: ")
		b.WriteString(strings.TrimSpace(contextPrompt))
	}
	b.WriteString("\n\n")
	b.WriteString(constant.AnalysisInstruction)

	parts := make([]llm.Part, 0, len(fileParts)+1)
	parts = append(parts, llm.TextPart(b.String()))
	return append(parts, fileParts...)
}

// FollowUpParts rebuilds the whole conversation for a follow-up turn. The
// provider is stateless, so every request carries the persona, the prior
// transcript, the new question, and the original files again.
func FollowUpParts(persona, contextPrompt string, history []entity.Message, question string, fileParts []llm.Part) []llm.Part {
	var b strings.Builder
	b.WriteString(persona)
	if strings.TrimSpace(contextPrompt) != "" {
		b.WriteString("\n\nContext from the artist: ")
		b.WriteString(strings.TrimSpace(contextPrompt))
	}
	b.WriteString("\n\nConversation so far:\n")
	for _, msg := range history {
		speaker := "Artist"
		if msg.Role == constant.MessageRoleAi {
			speaker = "Critic"
		}
		fmt.Fprintf(&b, "\n%s: %s\n", speaker, msg.Content)
	}
	b.WriteString("\nArtist: ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(constant.FollowUpInstruction)

	parts := make([]llm.Part, 0, len(fileParts)+1)
	parts = append(parts, llm.TextPart(b.String()))
	return append(parts, fileParts...)
}
