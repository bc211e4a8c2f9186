package newsletter

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"tech-digest/internal/config"
	"tech-digest/internal/observability"
)

const (
	defaultPrompt       = "Create a concise weekly tech newsletter from the provided articles."
	defaultEditorPrompt = "You are an expert copyeditor. Improve the draft while preserving meaning and the author's voice."

	// Сколько символов полного текста статьи уходит в корпус
	maxContentPerItem = 2000
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator гоняет двухэтапный пайплайн текста: черновик, потом редактура
type Generator struct {
	cfg    *config.Config
	client chatClient
	logger *observability.Logger
}

func NewGenerator(cfg *config.Config, apiKey string, logger *observability.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		client: openai.NewClient(apiKey),
		logger: logger,
	}
}

// Draft генерирует черновик рассылки по собранному корпусу.
// Ошибка здесь фатальна для недельного прогона.
func (g *Generator) Draft(ctx context.Context, items []Item, pageText map[string]string, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultPrompt
	}

	corpus := buildCorpus(items, pageText, g.cfg.Newsletter.MaxItems)
	userMessage := fmt.Sprintf(
		"Here are %d tech articles from this week with their full content:\n\n%s\n\nBased on the above articles and their content, please create a comprehensive weekly newsletter digest.",
		len(items), corpus,
	)

	g.logger.Info("Sending corpus to draft model", "items", len(items))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Newsletter.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens:   g.cfg.Newsletter.MaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("draft generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("draft generation: empty response")
	}

	g.logger.Info("Draft generated",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}

// Edit прогоняет черновик через редактуру. Редактура — best-effort
// улучшение: на любой ошибке возвращаем черновик как есть.
func (g *Generator) Edit(ctx context.Context, draft, editorPrompt string) string {
	if editorPrompt == "" {
		editorPrompt = defaultEditorPrompt
	}

	g.logger.Info("Sending draft to editor")

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Newsletter.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: editorPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please edit and improve this newsletter draft:\n\n" + draft},
		},
		MaxTokens: g.cfg.Newsletter.MaxTokens,
		// Редактору температуру пониже, правки должны быть консервативными
		Temperature: 0.3,
	})
	if err != nil || len(resp.Choices) == 0 {
		g.logger.Warn("Editor failed, keeping unedited draft", "error", errString(err))
		return draft
	}

	g.logger.Info("Draft edited",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content
}

// buildCorpus собирает текст для модели: заголовок, дата, URL и
// усечённый полный текст каждой записи
func buildCorpus(items []Item, pageText map[string]string, maxItems int) string {
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	typeLabels := map[string]string{
		"articles":    "Article",
		"newsletters": "Newsletter",
		"social":      "Social",
	}

	var b strings.Builder
	for i, item := range items {
		label, ok := typeLabels[item.ContentType]
		if !ok {
			label = "Item"
		}

		fmt.Fprintf(&b, "### %s %d\n", label, i+1)
		fmt.Fprintf(&b, "**Title:** %s\n", item.Title)
		fmt.Fprintf(&b, "**Date:** %s\n", item.Date)
		fmt.Fprintf(&b, "**URL:** %s\n", item.URL)

		if content, ok := pageText[item.URL]; ok {
			if len(content) > maxContentPerItem {
				content = content[:maxContentPerItem] + "..."
			}
			fmt.Fprintf(&b, "**Content:**\n%s\n", content)
		} else {
			b.WriteString("**Content:** [Not available]\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func errString(err error) string {
	if err == nil {
		return "empty response"
	}
	return err.Error()
}
