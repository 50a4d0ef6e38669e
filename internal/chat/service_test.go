package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
)

type stubLLM struct {
	answer      string
	err         error
	gotMessages []llm.Message
}

func (s *stubLLM) RewritePortfolio(ctx context.Context, input llm.RewriteInput) (json.RawMessage, error) {
	return nil, llm.ErrNotImplemented
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	s.gotMessages = messages
	return s.answer, s.err
}

func TestAskGroundsSystemPromptInDocument(t *testing.T) {
	stub := &stubLLM{answer: "He works with Go."}
	pSvc := portfolio.NewService(portfolio.NewMemoryRepo())
	svc := NewService(pSvc, stub)

	answer, err := svc.Ask(context.Background(), "What does he do?", "")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "He works with Go." {
		t.Fatalf("answer = %q", answer)
	}

	if len(stub.gotMessages) != 2 || stub.gotMessages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", stub.gotMessages)
	}
	owner := pSvc.GetData(context.Background(), portfolio.LangEN).PersonalInfo.Name
	if !strings.Contains(stub.gotMessages[0].Content, owner) {
		t.Fatalf("system prompt does not mention the owner %q", owner)
	}
}

func TestAskAppendsAttachmentText(t *testing.T) {
	stub := &stubLLM{answer: "ok"}
	svc := NewService(portfolio.NewService(portfolio.NewMemoryRepo()), stub)

	if _, err := svc.Ask(context.Background(), "summarize this", "EXTRACTED CONTENT"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(stub.gotMessages[1].Content, "EXTRACTED CONTENT") {
		t.Fatalf("attachment text missing from user message")
	}
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	svc := NewService(portfolio.NewService(portfolio.NewMemoryRepo()), &stubLLM{})

	if _, err := svc.Ask(context.Background(), "   ", ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestAskWithoutClientIsUnavailable(t *testing.T) {
	svc := NewService(portfolio.NewService(portfolio.NewMemoryRepo()), nil)

	if _, err := svc.Ask(context.Background(), "hello", ""); !errors.Is(err, llm.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
