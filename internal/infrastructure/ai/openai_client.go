package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// extractionModel 抽出系・チャット系で共通に使用するモデル
const extractionModel = openai.GPT4oMini

// OpenAIClient はOpenAI APIとの通信を担当するクライアント
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient は新しいOpenAIClientインスタンスを作成する
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
	}
}

// CompleteJSON はstrict JSONモードでチャット補完を実行し、応答本文を返す
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       extractionModel,
		Messages:    messages,
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("チャット補完APIの呼び出しに失敗: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("有効な応答が生成されませんでした")
	}
	return resp.Choices[0].Message.Content, nil
}

// Complete は通常モードでチャット補完を実行し、応答本文を返す
func (c *OpenAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       extractionModel,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("チャット補完APIの呼び出しに失敗: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("有効な応答が生成されませんでした")
	}
	return resp.Choices[0].Message.Content, nil
}
