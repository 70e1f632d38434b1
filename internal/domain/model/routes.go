package model

import "errors"

// TravelMode 経路検索の移動手段
type TravelMode string

const (
	TravelModeDriving TravelMode = "driving"
	TravelModeWalking TravelMode = "walking"
)

// EstimatedText 距離・時間が未確定のレグに表示するプレースホルダ
const EstimatedText = "推定"

// ErrRouteNotFound 経路プロバイダがルートを見つけられなかった場合のエラー（ZERO_RESULTS相当）
var ErrRouteNotFound = errors.New("有効なルートが見つかりませんでした")

// RouteLeg 連続する2地点間の1区間
// AIが宣言したルート表から来る場合と、経路プロバイダの結果から導出される場合がある
type RouteLeg struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Distance string   `json:"distance,omitempty"` // 例: "5.2km"、不明な場合は"推定"
	Duration string   `json:"duration,omitempty"` // 例: "12分"、不明な場合は"推定"
	Path     []LatLng `json:"path,omitempty"`     // 道路形状（経路プロバイダから取得できた場合のみ）
}

// RoutePlan 描画コンポーネントに渡す最終的な行程
// Legsは0..N-1で安定的に添字参照できる（ハイライト選択は描画側の責務）
type RoutePlan struct {
	PlanID        string           `json:"plan_id"`
	Origin        string           `json:"origin"`
	OrderedPoints []*ResolvedPlace `json:"ordered_points"`
	Legs          []RouteLeg       `json:"legs"`
	RoutePolyline string           `json:"route_polyline,omitempty"` // 全体ポリライン（エンコード済み）
}

// IsEmpty 解決済み地点が1つもない空の行程かどうか
func (p *RoutePlan) IsEmpty() bool {
	return p == nil || len(p.OrderedPoints) == 0
}

// RouteGenerationRules ルート生成時に参照する設定値
// パイプライン呼び出し時に値で渡され、パイプライン自身は変更しない
type RouteGenerationRules struct {
	MaxPoints         int     `json:"max_points"`          // 最大地点数
	ExcludeBroadAreas bool    `json:"exclude_broad_areas"` // 広範囲地名（県、市、町）を除外するか
	MinConfidence     float64 `json:"min_confidence"`      // 最小信頼度
	OptimizeWaypoints bool    `json:"optimize_waypoints"`  // 経由地の最適化を行うか（有効にすると上位課金枠）
	AutoGenerate      bool    `json:"auto_generate"`       // チャット応答から自動でルート生成するか
}

// DefaultRouteGenerationRules デフォルトのルート生成ルールを返す
func DefaultRouteGenerationRules() RouteGenerationRules {
	return RouteGenerationRules{
		MaxPoints:         6,
		ExcludeBroadAreas: true,
		MinConfidence:     0.9,
		OptimizeWaypoints: false,
		AutoGenerate:      false,
	}
}

// DirectionsRequest 経路プロバイダへのリクエスト
type DirectionsRequest struct {
	Origin            LatLng
	Destination       LatLng
	Waypoints         []LatLng
	Mode              TravelMode
	OptimizeWaypoints bool
}

// RouteLegGeometry 経路プロバイダが返す1区間分の実測情報
type RouteLegGeometry struct {
	DistanceText string
	DurationText string
	Path         []LatLng // ステップ単位の道路形状を連結したもの
}

// RouteDetails 経路プロバイダの検索結果
type RouteDetails struct {
	Legs             []RouteLegGeometry
	OverviewPolyline string
	WaypointOrder    []int // optimize指定時に並べ替えられた経由地の順序
}
