package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"finadvisor/internal/model"
)

const llmTimeout = 30 * time.Second

// Completer is the slice of the OpenAI-compatible client the dispatcher
// needs; *openai.Client satisfies it.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CallLLM sends one chat completion request and returns the assistant
// utterance. One attempt, bounded by llmTimeout; the caller maps failures to
// the user-facing apology.
func CallLLM(
	ctx context.Context,
	client Completer,
	modelID string,
	systemPrompt string,
	history []model.ChatMessage,
	userMessage string,
) (string, error) {

	var messages []openai.ChatCompletionMessage

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(fmt.Sprintf("=== ROLE: %s ===\n%s\n\n", msg.Role, msg.Content))
	}
	charCount := sb.Len()
	log.Printf("[LLM] payload: %d chars | ~%d tokens estimated", charCount, charCount/4)

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    modelID,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
