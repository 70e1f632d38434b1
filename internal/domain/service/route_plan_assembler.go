package service

import (
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// RoutePlanAssembler AI宣言ルートと幾何解決ルートを1つの行程に統合する
//
// 2つの表現は乖離しうる:
//   - 宣言ルート: ユーザーに提示された文面と完全に一致する（読みやすいが距離・時間は自己申告）
//   - 幾何解決ルート: 経路プロバイダ由来で距離・時間が正確
//
// 方針は「語りの順序と文面を信じ、語りのレグがない場合のみプロバイダの幾何で線を引く」
type RoutePlanAssembler struct{}

// NewRoutePlanAssembler は新しいRoutePlanAssemblerインスタンスを作成する
func NewRoutePlanAssembler() *RoutePlanAssembler {
	return &RoutePlanAssembler{}
}

// Assemble は宣言レグと構築済み行程を統合する
// declaredLegsが空でなければそれが正となり、レグはそのまま採用される
// resolvedはレグの端点名にマーカーを対応付けるための解決済み地点
func (a *RoutePlanAssembler) Assemble(declaredLegs []model.RouteLeg, composedPlan *model.RoutePlan, resolved []*model.ResolvedPlace) *model.RoutePlan {
	if len(declaredLegs) == 0 {
		if composedPlan != nil {
			return composedPlan
		}
		return &model.RoutePlan{PlanID: uuid.NewString()}
	}

	log.Printf("📋 宣言ルート %d区間を優先採用", len(declaredLegs))

	plan := &model.RoutePlan{
		PlanID: uuid.NewString(),
		Origin: declaredLegs[0].From,
		Legs:   declaredLegs,
	}
	if composedPlan != nil {
		plan.PlanID = composedPlan.PlanID
		plan.RoutePolyline = composedPlan.RoutePolyline
	}

	// レグの端点名に幾何対応付けできた解決済み地点だけをマーカー対象にする
	// 解決できなかった端点名はレグの文面にだけ残る（マーカーなし）
	plan.OrderedPoints = matchPointsToLegs(declaredLegs, resolved)
	return plan
}

// matchPointsToLegs レグの端点名に出現順で対応する解決済み地点を集める
func matchPointsToLegs(legs []model.RouteLeg, resolved []*model.ResolvedPlace) []*model.ResolvedPlace {
	names := make([]string, 0, len(legs)+1)
	if len(legs) > 0 {
		names = append(names, legs[0].From)
	}
	for _, leg := range legs {
		names = append(names, leg.To)
	}

	var points []*model.ResolvedPlace
	used := make(map[string]struct{})
	for _, name := range names {
		place := findByName(resolved, name)
		if place == nil {
			continue
		}
		if _, ok := used[place.Name]; ok {
			continue
		}
		used[place.Name] = struct{}{}
		points = append(points, place)
	}
	return points
}

// findByName 名前で解決済み地点を探す（完全一致を優先し、次に部分一致）
// プロバイダの正式名称と語り中の呼び名が微妙に異なるケースを部分一致で拾う
func findByName(resolved []*model.ResolvedPlace, name string) *model.ResolvedPlace {
	trimmed := strings.TrimSpace(name)
	for _, place := range resolved {
		if place.Name == trimmed {
			return place
		}
	}
	for _, place := range resolved {
		if strings.Contains(place.Name, trimmed) || strings.Contains(trimmed, place.Name) {
			return place
		}
	}
	return nil
}
