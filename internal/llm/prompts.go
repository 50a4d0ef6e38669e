package llm

import "fmt"

const rewriteSystemPrompt = `You are an editor for a personal portfolio website. You receive the full portfolio document as JSON and an instruction describing the desired change.

Rules:
- Return the COMPLETE updated document as a single JSON object with exactly the same schema as the input.
- Apply only what the instruction asks for. Leave every other field unchanged.
- Never invent employers, degrees, certifications or projects that are not in the input.
- Keep existing "id" values. New items you add get no "id" field.
- Do not change "adminConfig", "personalInfo.image" or "personalInfo.resumeLink".
- Respond with JSON only, no commentary.`

// BuildRewriteMessages assembles the chat messages for a document rewrite.
func BuildRewriteMessages(input RewriteInput) []Message {
	user := fmt.Sprintf("Language: %s\n\nInstruction:\n%s\n\nDocument:\n%s", input.Lang, input.Instruction, string(input.Document))
	return []Message{
		{Role: "system", Content: rewriteSystemPrompt},
		{Role: "user", Content: user},
	}
}
