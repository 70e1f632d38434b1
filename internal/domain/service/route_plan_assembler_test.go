package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
)

func TestRoutePlanAssembler(t *testing.T) {
	assembler := service.NewRoutePlanAssembler()

	declaredLegs := []model.RouteLeg{
		{From: "古窯旅館", To: "上山城", Distance: "5.2km", Duration: "12分"},
		{From: "上山城", To: "リナワールド", Distance: "3.1km", Duration: "8分"},
	}
	resolved := []*model.ResolvedPlace{
		{Name: "上山城", Location: model.LatLng{Lat: 38.1435, Lng: 140.2734}},
		{Name: "リナワールド", Location: model.LatLng{Lat: 38.1500, Lng: 140.2800}},
	}

	t.Run("宣言レグがあればそれがそのまま採用される", func(t *testing.T) {
		// 構築済みルートは別の順序・別の距離を持っているが、文面が勝つ
		composed := &model.RoutePlan{
			PlanID: "composed-plan",
			Origin: "古窯旅館",
			Legs: []model.RouteLeg{
				{From: "古窯旅館", To: "リナワールド", Distance: "9.9km", Duration: "20分"},
			},
			RoutePolyline: "encoded",
		}

		plan := assembler.Assemble(declaredLegs, composed, resolved)

		assert.Equal(t, declaredLegs, plan.Legs)
		assert.Equal(t, "古窯旅館", plan.Origin)
		// 識別子とポリラインは構築済みルートから引き継ぐ
		assert.Equal(t, "composed-plan", plan.PlanID)
		assert.Equal(t, "encoded", plan.RoutePolyline)
	})

	t.Run("宣言レグがなければ構築済みルートを返す", func(t *testing.T) {
		composed := &model.RoutePlan{PlanID: "composed-plan", Origin: "古窯旅館"}

		plan := assembler.Assemble(nil, composed, resolved)
		assert.Same(t, composed, plan)
	})

	t.Run("宣言レグも構築済みルートもなければ空の行程", func(t *testing.T) {
		plan := assembler.Assemble(nil, nil, nil)
		assert.True(t, plan.IsEmpty())
		assert.NotEmpty(t, plan.PlanID)
	})

	t.Run("レグの端点名に対応する解決済み地点が出現順で並ぶ", func(t *testing.T) {
		plan := assembler.Assemble(declaredLegs, nil, resolved)

		require.Len(t, plan.OrderedPoints, 2)
		assert.Equal(t, "上山城", plan.OrderedPoints[0].Name)
		assert.Equal(t, "リナワールド", plan.OrderedPoints[1].Name)
	})

	t.Run("解決できない端点名はレグの文面にだけ残る", func(t *testing.T) {
		legs := []model.RouteLeg{
			{From: "古窯旅館", To: "謎の秘境", Distance: "推定", Duration: "推定"},
			{From: "謎の秘境", To: "上山城", Distance: "推定", Duration: "推定"},
		}

		plan := assembler.Assemble(legs, nil, resolved)

		// レグはそのまま、マーカーは解決できた地点だけ
		require.Len(t, plan.Legs, 2)
		assert.Equal(t, "謎の秘境", plan.Legs[0].To)
		require.Len(t, plan.OrderedPoints, 1)
		assert.Equal(t, "上山城", plan.OrderedPoints[0].Name)
	})

	t.Run("正式名称と呼び名の部分一致でもマーカーを対応付ける", func(t *testing.T) {
		official := []*model.ResolvedPlace{
			{Name: "上山城郷土資料館", Location: model.LatLng{Lat: 38.1435, Lng: 140.2734}},
		}
		legs := []model.RouteLeg{
			{From: "古窯旅館", To: "上山城", Distance: "5.2km", Duration: "12分"},
		}

		plan := assembler.Assemble(legs, nil, official)

		require.Len(t, plan.OrderedPoints, 1)
		assert.Equal(t, "上山城郷土資料館", plan.OrderedPoints[0].Name)
	})
}
