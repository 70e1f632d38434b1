package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// extractLocationsSystemPrompt 地名抽出用のシステムプロンプト
const extractLocationsSystemPrompt = `あなたは地名抽出の専門家です。与えられたテキストから地名・観光地・施設名を抽出し、JSON形式で返してください。

重要な指示：
- 必ずJSON形式で返してください
- 地名が見つからない場合は空の配列を返してください
- 山形県の観光地を特に重視してください

抽出対象：
- 都道府県名（例：山形県、東京都）
- 市区町村名（例：上山市、新宿区）
- 観光地・名所（例：蔵王温泉、上山温泉、山寺、立石寺）
- 施設名（例：古窯旅館、あべくん珈琲）
- 駅名（例：上山温泉駅）

出力形式（必ずこの形式で返してください）：
{
  "locations": [
    {
      "name": "地名・施設名",
      "type": "prefecture|city|attraction|facility|station",
      "confidence": 0.0-1.0
    }
  ]
}`

// extractRoutePromptTemplate ルート区間抽出用のプロンプト
const extractRoutePromptTemplate = `以下の旅行プランテキストから、ルート情報を抽出してください。

テキスト内に以下のような形式があれば、それを抽出してください：
- 「1. [出発地] → [目的地] [距離]km / [時間]」
- 「[出発地] → [目的地] [距離] / [時間]」

また、テキスト内に観光地が順番に記載されている場合、その順番と記載内容からルートを推論してください。

テキスト:
%s

出力形式（JSON）:
{
  "routeSegments": [
    {
      "from": "出発地名",
      "to": "目的地名",
      "distance": "距離（例: 25.0km、見つからない場合は「推定」）",
      "duration": "移動時間（例: 47分、見つからない場合は「推定」）"
    }
  ]
}

重要な指示：
- テキスト内に明確なルート表があれば、それをそのまま抽出してください
- 出発地が明示されていない場合は「古窯旅館」を出発地としてください
- ルート情報が見つからない場合は空の配列を返してください`

// OpenAILocationExtractor OpenAIを使った地名・ルート抽出の実装
type OpenAILocationExtractor struct {
	client *OpenAIClient
}

// NewOpenAILocationExtractor は新しいOpenAILocationExtractorインスタンスを作成する
func NewOpenAILocationExtractor(client *OpenAIClient) *OpenAILocationExtractor {
	return &OpenAILocationExtractor{client: client}
}

// ExtractLocations はテキストから地名候補を抽出する
// 応答がスキーマ通りにパースできない場合は空スライスを返す（抽出失敗は致命的ではない）
func (e *OpenAILocationExtractor) ExtractLocations(ctx context.Context, text string) ([]model.LocationCandidate, error) {
	content, err := e.client.CompleteJSON(ctx, extractLocationsSystemPrompt, text, 0.3)
	if err != nil {
		return nil, fmt.Errorf("地名抽出リクエストに失敗: %w", err)
	}

	candidates, ok := parseLocations(content)
	if !ok {
		log.Printf("⚠️ 地名抽出応答のパースに失敗、空リストで続行")
		return nil, nil
	}
	return candidates, nil
}

// ExtractRouteSegments はテキストからAIが宣言したルート区間を抽出する
func (e *OpenAILocationExtractor) ExtractRouteSegments(ctx context.Context, text string) ([]model.RouteLeg, error) {
	prompt := fmt.Sprintf(extractRoutePromptTemplate, text)
	content, err := e.client.CompleteJSON(ctx, "", prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("ルート抽出リクエストに失敗: %w", err)
	}

	legs, ok := parseRouteSegments(content)
	if !ok {
		log.Printf("⚠️ ルート抽出応答のパースに失敗、空リストで続行")
		return nil, nil
	}
	return legs, nil
}

// locationsPayload 地名抽出応答のスキーマ
type locationsPayload struct {
	Locations []struct {
		Name       string  `json:"name"`
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	} `json:"locations"`
}

// parseLocations は応答本文をスキーマ検証付きでパースする
// 戻り値の第2値はパース成否のタグ（呼び出し側は例外ではなくタグで分岐する）
func parseLocations(content string) ([]model.LocationCandidate, bool) {
	var payload locationsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}

	candidates := make([]model.LocationCandidate, 0, len(payload.Locations))
	for _, loc := range payload.Locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			continue
		}
		candidates = append(candidates, model.LocationCandidate{
			Name:       name,
			Type:       normalizeLocationType(loc.Type),
			Confidence: clampConfidence(loc.Confidence),
		})
	}
	return candidates, true
}

// routeSegmentsPayload ルート抽出応答のスキーマ
type routeSegmentsPayload struct {
	RouteSegments []struct {
		From     string `json:"from"`
		To       string `json:"to"`
		Distance string `json:"distance"`
		Duration string `json:"duration"`
	} `json:"routeSegments"`
}

func parseRouteSegments(content string) ([]model.RouteLeg, bool) {
	var payload routeSegmentsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}

	legs := make([]model.RouteLeg, 0, len(payload.RouteSegments))
	for _, seg := range payload.RouteSegments {
		from := strings.TrimSpace(seg.From)
		to := strings.TrimSpace(seg.To)
		if from == "" || to == "" {
			continue
		}
		leg := model.RouteLeg{
			From:     from,
			To:       to,
			Distance: strings.TrimSpace(seg.Distance),
			Duration: strings.TrimSpace(seg.Duration),
		}
		if leg.Distance == "" {
			leg.Distance = model.EstimatedText
		}
		if leg.Duration == "" {
			leg.Duration = model.EstimatedText
		}
		legs = append(legs, leg)
	}
	return legs, true
}

// normalizeLocationType AI応答の分類を既知の列挙値に正規化する
func normalizeLocationType(raw string) model.LocationType {
	switch model.LocationType(raw) {
	case model.LocationTypePrefecture, model.LocationTypeCity,
		model.LocationTypeAttraction, model.LocationTypeFacility,
		model.LocationTypeStation:
		return model.LocationType(raw)
	default:
		return model.LocationTypeAttraction
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
