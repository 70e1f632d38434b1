package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// travelChatSystemPrompt 旅行AIプランナーのシステムプロンプト
const travelChatSystemPrompt = `あなたは旅行AIプランナーです。出発地・目的地・宿泊日数などをもとに、ユーザーに最適な旅行プランを会話形式で提案してください。
古窯旅館（山形県上山市）を拠点とした周辺観光の提案を得意とします。
プランを提案する際は、訪問順に番号付きで観光地を列挙し、可能であれば
「1. 古窯旅館→上山城 5.2km / 12分」のような形式のルート表を含めてください。`

// summarySystemPrompt 会話要約用のシステムプロンプト
const summarySystemPrompt = `これまでの旅行相談の会話を、決定事項（行きたい場所・日数・移動手段）を中心に3行以内で要約してください。`

// TravelChatService 旅行プラン提案チャットを担当する
type TravelChatService struct {
	client *OpenAIClient
}

// NewTravelChatService は新しいTravelChatServiceインスタンスを作成する
func NewTravelChatService(client *OpenAIClient) *TravelChatService {
	return &TravelChatService{client: client}
}

// Reply は会話履歴に対する旅行プランナーの返答を生成する
func (s *TravelChatService) Reply(ctx context.Context, messages []model.ChatMessage) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: travelChatSystemPrompt,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	reply, err := s.client.Complete(ctx, chatMessages, 0.7)
	if err != nil {
		return "", fmt.Errorf("旅行チャット応答の生成に失敗: %w", err)
	}
	return reply, nil
}

// Summarize は会話履歴の要約を生成する
func (s *TravelChatService) Summarize(ctx context.Context, messages []model.ChatMessage) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: summarySystemPrompt,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	summary, err := s.client.Complete(ctx, chatMessages, 0.3)
	if err != nil {
		return "", fmt.Errorf("会話要約の生成に失敗: %w", err)
	}
	return summary, nil
}
