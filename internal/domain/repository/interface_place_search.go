package repository

import (
	"context"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// PlaceSearchRepository 地名の実在確認（テキスト検索）を担当するインターフェース
type PlaceSearchRepository interface {
	// SearchText はクエリに最も合致する地点を1件返す
	// 先頭の結果に位置情報がない場合は (nil, nil) を返し、候補は解決不能として扱う
	SearchText(ctx context.Context, query string) (*model.ResolvedPlace, error)

	// SearchTextAll はクエリに合致する地点を最大limit件返す（カテゴリ補完検索用）
	SearchTextAll(ctx context.Context, query string, limit int) ([]*model.ResolvedPlace, error)
}
