package repository

import (
	"context"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// LocationExtractionRepository 自由文からの地名・ルート抽出を担当するインターフェース
type LocationExtractionRepository interface {
	// ExtractLocations はテキストから地名候補を抽出する
	// AIの応答がJSONとしてパースできない場合は空スライスを返す（エラーにはしない）
	ExtractLocations(ctx context.Context, text string) ([]model.LocationCandidate, error)

	// ExtractRouteSegments はテキストからAIが宣言したルート区間を抽出する
	// ルート表が見つからない場合は空スライスを返す
	ExtractRouteSegments(ctx context.Context, text string) ([]model.RouteLeg, error)
}
