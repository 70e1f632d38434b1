package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	polyline "github.com/twpayne/go-polyline"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/repository"
)

// RouteComposerService 解決済み地点から複数地点ルートを組み立てる
// 経路検索の失敗に応じて段階的にフォールバックする:
//  1. 単一地点: 出発地→地点の直行ルート
//  2. 複数地点: 経由地付きルート（経由地最適化はルールの値をそのまま使用）
//  3. 複数地点が失敗したら先頭地点のみを目的地に再試行
//  4. それも失敗したら地点を直線（測地線）で接続する
//
// 各フォールバックは前段の失敗確認後にのみ実行される（並行化しない）
type RouteComposerService struct {
	directionsRepo repository.DirectionsRepository
}

// NewRouteComposerService は新しいRouteComposerServiceインスタンスを作成する
func NewRouteComposerService(directionsRepo repository.DirectionsRepository) *RouteComposerService {
	return &RouteComposerService{directionsRepo: directionsRepo}
}

// Compose は出発地点から解決済み地点を巡るルートを構築する
// エラーは返さない設計: どの段階で失敗しても出力が貧しくなるだけで、必ず行程を返す
// 解決済み地点が0件の場合のみ空の行程を返す（エラーではなく明示的な空結果）
func (s *RouteComposerService) Compose(ctx context.Context, origin *model.ResolvedPlace, points []*model.ResolvedPlace, mode model.TravelMode, rules model.RouteGenerationRules) *model.RoutePlan {
	plan := &model.RoutePlan{
		PlanID: uuid.NewString(),
		Origin: origin.Name,
	}

	if len(points) == 0 {
		log.Printf("📍 解決済み地点が0件のため空の行程を返します")
		return plan
	}

	// 1. 単一地点: 直行ルート
	if len(points) == 1 {
		details, err := s.directionsRepo.GetRoute(ctx, &model.DirectionsRequest{
			Origin:      origin.Location,
			Destination: points[0].Location,
			Mode:        mode,
		})
		if err == nil && details != nil {
			log.Printf("✅ 単一地点ルート取得成功: %s → %s", origin.Name, points[0].Name)
			return s.buildRoutedPlan(plan, origin, points, details)
		}
		log.Printf("⚠️ 単一地点ルート取得失敗 (%v)、直線接続にフォールバック", err)
		return s.buildGeodesicPlan(plan, origin, points)
	}

	// 2. 複数地点: 最後の地点を目的地、それ以外を経由地とする
	last := points[len(points)-1]
	waypoints := make([]model.LatLng, 0, len(points)-1)
	for _, p := range points[:len(points)-1] {
		waypoints = append(waypoints, p.Location)
	}

	details, err := s.directionsRepo.GetRoute(ctx, &model.DirectionsRequest{
		Origin:            origin.Location,
		Destination:       last.Location,
		Waypoints:         waypoints,
		Mode:              mode,
		OptimizeWaypoints: rules.OptimizeWaypoints,
	})
	if err == nil && details != nil {
		log.Printf("✅ 複数地点ルート取得成功 (%d地点)", len(points))
		ordered := applyWaypointOrder(points, details.WaypointOrder)
		return s.buildRoutedPlan(plan, origin, ordered, details)
	}
	log.Printf("⚠️ 複数地点ルート取得失敗 (%v)、先頭地点のみで再試行", err)

	// 3. 先頭地点のみを目的地として再試行（以降の地点は落とす）
	details, err = s.directionsRepo.GetRoute(ctx, &model.DirectionsRequest{
		Origin:      origin.Location,
		Destination: points[0].Location,
		Mode:        mode,
	})
	if err == nil && details != nil {
		log.Printf("✅ 先頭地点への代替ルート取得成功: %s → %s", origin.Name, points[0].Name)
		return s.buildRoutedPlan(plan, origin, points[:1], details)
	}
	log.Printf("⚠️ 代替ルートも失敗 (%v)、直線接続にフォールバック", err)

	// 4. 測地線フォールバック: 道路形状なしでも必ず何らかの接続を描画できるようにする
	return s.buildGeodesicPlan(plan, origin, points)
}

// buildRoutedPlan 経路プロバイダの実測結果から行程を構築する
func (s *RouteComposerService) buildRoutedPlan(plan *model.RoutePlan, origin *model.ResolvedPlace, points []*model.ResolvedPlace, details *model.RouteDetails) *model.RoutePlan {
	names := make([]string, 0, len(points)+1)
	names = append(names, origin.Name)
	for _, p := range points {
		names = append(names, p.Name)
	}

	legs := make([]model.RouteLeg, 0, len(points))
	for i := 0; i < len(points); i++ {
		leg := model.RouteLeg{
			From:     names[i],
			To:       names[i+1],
			Distance: model.EstimatedText,
			Duration: model.EstimatedText,
		}
		if i < len(details.Legs) {
			geometry := details.Legs[i]
			if geometry.DistanceText != "" {
				leg.Distance = geometry.DistanceText
			}
			if geometry.DurationText != "" {
				leg.Duration = geometry.DurationText
			}
			leg.Path = geometry.Path
		}
		legs = append(legs, leg)
	}

	plan.OrderedPoints = points
	plan.Legs = legs
	plan.RoutePolyline = details.OverviewPolyline
	return plan
}

// buildGeodesicPlan 経路検索が全滅した場合に地点を直線で接続した行程を構築する
func (s *RouteComposerService) buildGeodesicPlan(plan *model.RoutePlan, origin *model.ResolvedPlace, points []*model.ResolvedPlace) *model.RoutePlan {
	stops := make([]*model.ResolvedPlace, 0, len(points)+1)
	stops = append(stops, origin)
	stops = append(stops, points...)

	legs := make([]model.RouteLeg, 0, len(points))
	coords := make([][]float64, 0, len(stops))
	coords = append(coords, []float64{origin.Location.Lat, origin.Location.Lng})

	for i := 0; i < len(stops)-1; i++ {
		from, to := stops[i], stops[i+1]
		distanceMeters := geo.Distance(
			orb.Point{from.Location.Lng, from.Location.Lat},
			orb.Point{to.Location.Lng, to.Location.Lat},
		)
		legs = append(legs, model.RouteLeg{
			From:     from.Name,
			To:       to.Name,
			Distance: fmt.Sprintf("%.1fkm", distanceMeters/1000),
			Duration: model.EstimatedText,
			Path:     []model.LatLng{from.Location, to.Location},
		})
		coords = append(coords, []float64{to.Location.Lat, to.Location.Lng})
	}

	plan.OrderedPoints = points
	plan.Legs = legs
	plan.RoutePolyline = string(polyline.EncodeCoords(coords))
	log.Printf("📍 直線接続で行程を構築 (%d区間)", len(legs))
	return plan
}

// applyWaypointOrder 経由地最適化で並べ替えられた順序を地点リストに適用する
// 目的地（末尾）は固定のまま、経由地のみ並べ替える
func applyWaypointOrder(points []*model.ResolvedPlace, order []int) []*model.ResolvedPlace {
	if len(order) != len(points)-1 {
		return points
	}
	reordered := make([]*model.ResolvedPlace, 0, len(points))
	for _, idx := range order {
		if idx < 0 || idx >= len(points)-1 {
			return points
		}
		reordered = append(reordered, points[idx])
	}
	return append(reordered, points[len(points)-1])
}
