package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/telemetry"
)

// ErrEmptyMessage means the visitor sent nothing to answer.
var ErrEmptyMessage = errors.New("empty message")

// Service proxies visitor questions to the LLM, grounded in the current
// English document so answers reflect what the site actually shows.
type Service struct {
	Portfolio *portfolio.Service
	LLM       llm.Client
}

// NewService constructs a Service.
func NewService(p *portfolio.Service, client llm.Client) *Service {
	return &Service{Portfolio: p, LLM: client}
}

// Ask answers a visitor message. attachmentText, when non-empty, is appended
// to the question as extracted document content.
func (s *Service) Ask(ctx context.Context, message, attachmentText string) (string, error) {
	if strings.TrimSpace(message) == "" && strings.TrimSpace(attachmentText) == "" {
		return "", ErrEmptyMessage
	}
	if s.LLM == nil {
		return "", llm.ErrNotImplemented
	}

	doc := s.Portfolio.GetData(ctx, portfolio.LangEN)
	system := buildSystemPrompt(doc)

	user := message
	if strings.TrimSpace(attachmentText) != "" {
		user = fmt.Sprintf("%s\n\nAttached document:\n%s", message, attachmentText)
	}

	metrics.IncChatRequest()
	answer, err := s.LLM.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	if err != nil {
		telemetry.Error("chat.completion_failed", map[string]any{"error": err.Error()})
		return "", err
	}
	return answer, nil
}

// buildSystemPrompt summarizes the owner from the live document. The prompt
// is regenerated per request so committed edits show up immediately.
func buildSystemPrompt(doc portfolio.Document) string {
	var b strings.Builder
	info := doc.PersonalInfo
	fmt.Fprintf(&b, "You are a helpful assistant on the portfolio website of %s, %s based in %s.\n", info.Name, info.Role, info.Location)
	b.WriteString("Answer visitor questions about the owner using only the facts below. Be concise and friendly. If asked something not covered, say you don't know and suggest contacting the owner directly.\n\n")

	if info.Objective != "" {
		fmt.Fprintf(&b, "About: %s\n", info.Objective)
	}
	if info.Email != "" {
		fmt.Fprintf(&b, "Contact: %s\n", info.Email)
	}

	if len(doc.Skills) > 0 {
		b.WriteString("\nSkills:\n")
		for _, sc := range doc.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", sc.Category, strings.Join(sc.Skills, ", "))
		}
	}
	if len(doc.Experience) > 0 {
		b.WriteString("\nExperience:\n")
		for _, e := range doc.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Role, e.Company, e.Period)
		}
	}
	if len(doc.Projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, p := range doc.Projects {
			fmt.Fprintf(&b, "- %s [%s]: %s\n", p.Title, p.Category, p.TechStack)
		}
	}
	if len(doc.Certifications) > 0 {
		b.WriteString("\nCertifications:\n")
		for _, c := range doc.Certifications {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Title, c.Issuer)
		}
	}
	return b.String()
}
