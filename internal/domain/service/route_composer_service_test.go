package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
)

// composerDirectionsFake リクエストを記録し、指定した回数だけ失敗するフェイク
type composerDirectionsFake struct {
	requests  []*model.DirectionsRequest
	failCount int // 先頭からこの回数分は ErrRouteNotFound を返す
	details   *model.RouteDetails
}

func (f *composerDirectionsFake) GetRoute(ctx context.Context, req *model.DirectionsRequest) (*model.RouteDetails, error) {
	f.requests = append(f.requests, req)
	if len(f.requests) <= f.failCount {
		return nil, model.ErrRouteNotFound
	}
	return f.details, nil
}

func testPoints(names ...string) []*model.ResolvedPlace {
	coords := []model.LatLng{
		{Lat: 38.1435, Lng: 140.2734},
		{Lat: 38.1500, Lng: 140.2800},
		{Lat: 38.2000, Lng: 140.3000},
	}
	points := make([]*model.ResolvedPlace, 0, len(names))
	for i, name := range names {
		points = append(points, &model.ResolvedPlace{Name: name, Location: coords[i%len(coords)]})
	}
	return points
}

func TestRouteComposer(t *testing.T) {
	ctx := context.Background()
	origin := model.OriginResolvedPlace()
	rules := model.DefaultRouteGenerationRules()

	t.Run("複数地点ルートが成功すれば実測レグが返る", func(t *testing.T) {
		fake := &composerDirectionsFake{details: &model.RouteDetails{
			Legs: []model.RouteLegGeometry{
				{DistanceText: "5.2km", DurationText: "12分"},
				{DistanceText: "3.1km", DurationText: "8分"},
			},
			OverviewPolyline: "abcd",
		}}
		composer := service.NewRouteComposerService(fake)
		points := testPoints("上山城", "リナワールド")

		plan := composer.Compose(ctx, origin, points, model.TravelModeDriving, rules)

		require.Len(t, plan.Legs, 2)
		assert.Equal(t, "古窯旅館", plan.Legs[0].From)
		assert.Equal(t, "上山城", plan.Legs[0].To)
		assert.Equal(t, "5.2km", plan.Legs[0].Distance)
		assert.Equal(t, "上山城", plan.Legs[1].From)
		assert.Equal(t, "リナワールド", plan.Legs[1].To)
		assert.Equal(t, "abcd", plan.RoutePolyline)
		assert.Len(t, plan.OrderedPoints, 2)

		// 経由地最適化フラグはルールの値がそのまま使われる
		require.Len(t, fake.requests, 1)
		assert.Equal(t, rules.OptimizeWaypoints, fake.requests[0].OptimizeWaypoints)
		assert.Len(t, fake.requests[0].Waypoints, 1)
	})

	t.Run("複数地点が失敗したら先頭地点のみで再試行する", func(t *testing.T) {
		fake := &composerDirectionsFake{
			failCount: 1,
			details: &model.RouteDetails{
				Legs: []model.RouteLegGeometry{{DistanceText: "5.2km", DurationText: "12分"}},
			},
		}
		composer := service.NewRouteComposerService(fake)
		points := testPoints("上山城", "リナワールド", "蔵王温泉")

		plan := composer.Compose(ctx, origin, points, model.TravelModeDriving, rules)

		// 1回目: 複数地点、2回目: 先頭地点のみ
		require.Len(t, fake.requests, 2)
		assert.Empty(t, fake.requests[1].Waypoints)
		assert.Equal(t, points[0].Location, fake.requests[1].Destination)

		require.Len(t, plan.OrderedPoints, 1)
		assert.Equal(t, "上山城", plan.OrderedPoints[0].Name)
		require.Len(t, plan.Legs, 1)
	})

	t.Run("全経路検索が失敗したら直線接続の行程を返す", func(t *testing.T) {
		fake := &composerDirectionsFake{failCount: 2}
		composer := service.NewRouteComposerService(fake)
		points := testPoints("上山城", "リナワールド", "蔵王温泉")

		plan := composer.Compose(ctx, origin, points, model.TravelModeDriving, rules)

		// 空の行程ではなく、全地点を直線で結んだレグが返る
		require.Len(t, plan.Legs, 3)
		assert.Equal(t, "古窯旅館", plan.Legs[0].From)
		assert.Equal(t, "上山城", plan.Legs[0].To)
		assert.Equal(t, "蔵王温泉", plan.Legs[2].To)
		assert.Len(t, plan.OrderedPoints, 3)
		assert.NotEmpty(t, plan.RoutePolyline)
		for _, leg := range plan.Legs {
			assert.NotEmpty(t, leg.Distance) // 直線距離は計算できる
			assert.Equal(t, model.EstimatedText, leg.Duration)
			assert.Len(t, leg.Path, 2)
		}
	})

	t.Run("単一地点は直行ルートを要求する", func(t *testing.T) {
		fake := &composerDirectionsFake{details: &model.RouteDetails{
			Legs: []model.RouteLegGeometry{{DistanceText: "5.2km", DurationText: "12分"}},
		}}
		composer := service.NewRouteComposerService(fake)
		points := testPoints("上山城")

		plan := composer.Compose(ctx, origin, points, model.TravelModeDriving, rules)

		require.Len(t, fake.requests, 1)
		assert.Empty(t, fake.requests[0].Waypoints)
		require.Len(t, plan.Legs, 1)
		assert.Equal(t, "12分", plan.Legs[0].Duration)
	})

	t.Run("地点0件なら空の行程を返す", func(t *testing.T) {
		fake := &composerDirectionsFake{}
		composer := service.NewRouteComposerService(fake)

		plan := composer.Compose(ctx, origin, nil, model.TravelModeDriving, rules)

		assert.True(t, plan.IsEmpty())
		assert.Empty(t, fake.requests)
		assert.NotEmpty(t, plan.PlanID)
	})

	t.Run("経由地最適化の並べ替え順が地点に反映される", func(t *testing.T) {
		optimized := rules
		optimized.OptimizeWaypoints = true
		fake := &composerDirectionsFake{details: &model.RouteDetails{
			Legs: []model.RouteLegGeometry{
				{DistanceText: "1km", DurationText: "3分"},
				{DistanceText: "2km", DurationText: "5分"},
				{DistanceText: "3km", DurationText: "7分"},
			},
			WaypointOrder: []int{1, 0}, // 経由地2つが入れ替わった
		}}
		composer := service.NewRouteComposerService(fake)
		points := testPoints("上山城", "リナワールド", "蔵王温泉")

		plan := composer.Compose(ctx, origin, points, model.TravelModeDriving, optimized)

		require.Len(t, plan.OrderedPoints, 3)
		assert.Equal(t, "リナワールド", plan.OrderedPoints[0].Name)
		assert.Equal(t, "上山城", plan.OrderedPoints[1].Name)
		assert.Equal(t, "蔵王温泉", plan.OrderedPoints[2].Name)
	})
}
