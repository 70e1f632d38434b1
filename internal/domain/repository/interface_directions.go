package repository

import (
	"context"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// DirectionsRepository 経路検索プロバイダのインターフェース
type DirectionsRepository interface {
	// GetRoute は出発地から目的地までの経路を取得する
	// ルートが見つからない場合は model.ErrRouteNotFound を返す
	GetRoute(ctx context.Context, req *model.DirectionsRequest) (*model.RouteDetails, error)
}
