package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
	"github.com/temasamo/Koyo-travel-ai/internal/usecase"
)

// extractionFake AI抽出のフェイク
type extractionFake struct {
	candidates []model.LocationCandidate
	legs       []model.RouteLeg
	extractErr error
}

func (f *extractionFake) ExtractLocations(ctx context.Context, text string) ([]model.LocationCandidate, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.candidates, nil
}

func (f *extractionFake) ExtractRouteSegments(ctx context.Context, text string) ([]model.RouteLeg, error) {
	return f.legs, nil
}

// searchFake 地点検索のフェイク（クエリの先頭が候補名に一致したら返す）
type searchFake struct {
	places map[string]*model.ResolvedPlace
}

func (f *searchFake) SearchText(ctx context.Context, query string) (*model.ResolvedPlace, error) {
	for name, place := range f.places {
		if strings.HasPrefix(query, name) {
			return place, nil
		}
	}
	return nil, nil
}

func (f *searchFake) SearchTextAll(ctx context.Context, query string, limit int) ([]*model.ResolvedPlace, error) {
	return nil, nil
}

// directionsFake 経路検索のフェイク
type directionsFake struct {
	err     error
	details *model.RouteDetails
}

func (f *directionsFake) GetRoute(ctx context.Context, req *model.DirectionsRequest) (*model.RouteDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func newUseCase(extraction *extractionFake, search *searchFake, directions *directionsFake) usecase.ItineraryUseCase {
	return usecase.NewItineraryUseCase(
		extraction,
		service.NewCandidateFilterService(),
		service.NewCategoryService(search),
		service.NewPlaceResolverService(search),
		service.NewRouteComposerService(directions),
		service.NewRoutePlanAssembler(),
	)
}

func TestGeneratePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("ルート表のない語りからも出現順の行程が組み立つ", func(t *testing.T) {
		extraction := &extractionFake{candidates: []model.LocationCandidate{
			{Name: "上山温泉", Type: model.LocationTypeAttraction, Confidence: 0.95},
			{Name: "蔵王温泉", Type: model.LocationTypeAttraction, Confidence: 0.95},
			{Name: "山寺", Type: model.LocationTypeAttraction, Confidence: 0.92},
		}}
		search := &searchFake{places: map[string]*model.ResolvedPlace{
			"上山温泉": {Name: "上山温泉", Location: model.LatLng{Lat: 38.1520, Lng: 140.2740}},
			"山寺":   {Name: "山寺", Location: model.LatLng{Lat: 38.3130, Lng: 140.4380}},
		}}
		directions := &directionsFake{err: model.ErrRouteNotFound}
		uc := newUseCase(extraction, search, directions)

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{
			Text: "1日目は上山温泉、2日目は蔵王温泉、3日目は山寺に行きます",
		})

		require.NoError(t, err)
		require.Len(t, plan.Legs, 3)
		assert.Equal(t, "古窯旅館", plan.Legs[0].From)
		assert.Equal(t, "上山温泉", plan.Legs[0].To)
		assert.Equal(t, "上山温泉", plan.Legs[1].From)
		assert.Equal(t, "蔵王温泉", plan.Legs[1].To)
		assert.Equal(t, "蔵王温泉", plan.Legs[2].From)
		assert.Equal(t, "山寺", plan.Legs[2].To)
		for _, leg := range plan.Legs {
			assert.Equal(t, model.EstimatedText, leg.Distance)
			assert.Equal(t, model.EstimatedText, leg.Duration)
		}
		// 蔵王温泉は事前投入スポット、残り2件は検索で解決される
		assert.Len(t, plan.OrderedPoints, 3)
	})

	t.Run("ルート表があればその区間が優先される", func(t *testing.T) {
		extraction := &extractionFake{
			candidates: []model.LocationCandidate{
				{Name: "上山城", Type: model.LocationTypeAttraction, Confidence: 0.95},
				{Name: "リナワールド", Type: model.LocationTypeAttraction, Confidence: 0.95},
			},
		}
		search := &searchFake{}
		directions := &directionsFake{err: model.ErrRouteNotFound}
		uc := newUseCase(extraction, search, directions)

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{
			Text: "おすすめルート:\n1. 古窯旅館→上山城 5.2km / 12分\n2. 上山城→リナワールド 3.1km / 8分",
		})

		require.NoError(t, err)
		require.Len(t, plan.Legs, 2)
		assert.Equal(t, "5.2km", plan.Legs[0].Distance)
		assert.Equal(t, "12分", plan.Legs[0].Duration)
		assert.Equal(t, "3.1km", plan.Legs[1].Distance)
	})

	t.Run("AI宣言ルートがあればパターン抽出より優先される", func(t *testing.T) {
		extraction := &extractionFake{
			candidates: []model.LocationCandidate{
				{Name: "上山城", Type: model.LocationTypeAttraction, Confidence: 0.95},
			},
			legs: []model.RouteLeg{
				{From: "古窯旅館", To: "上山城", Distance: "5.0km", Duration: "11分"},
			},
		}
		uc := newUseCase(extraction, &searchFake{}, &directionsFake{err: model.ErrRouteNotFound})

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{Text: "上山城に行きたい"})

		require.NoError(t, err)
		require.Len(t, plan.Legs, 1)
		assert.Equal(t, "5.0km", plan.Legs[0].Distance)
	})

	t.Run("抽出失敗でもエラーにならず空の行程が返る", func(t *testing.T) {
		extraction := &extractionFake{extractErr: errors.New("APIエラー")}
		uc := newUseCase(extraction, &searchFake{}, &directionsFake{err: model.ErrRouteNotFound})

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{Text: "今日はいい天気ですね"})

		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("経路検索成功時は実測の距離時間が入る", func(t *testing.T) {
		extraction := &extractionFake{candidates: []model.LocationCandidate{
			{Name: "上山城", Type: model.LocationTypeAttraction, Confidence: 0.95},
		}}
		directions := &directionsFake{details: &model.RouteDetails{
			Legs:             []model.RouteLegGeometry{{DistanceText: "5.2km", DurationText: "12分"}},
			OverviewPolyline: "encoded",
		}}
		uc := newUseCase(extraction, &searchFake{}, directions)

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{Text: "上山城だけ見たい"})

		require.NoError(t, err)
		require.Len(t, plan.Legs, 1)
		assert.Equal(t, "5.2km", plan.Legs[0].Distance)
		assert.Equal(t, "encoded", plan.RoutePolyline)
	})

	t.Run("カテゴリ選択で一致候補に絞り込まれる", func(t *testing.T) {
		extraction := &extractionFake{candidates: []model.LocationCandidate{
			{Name: "上山城", Type: model.LocationTypeAttraction, Confidence: 0.95},
			{Name: "山寺", Type: model.LocationTypeAttraction, Confidence: 0.95},
			{Name: "リナワールド", Type: model.LocationTypeAttraction, Confidence: 0.95},
			{Name: "立石寺", Type: model.LocationTypeAttraction, Confidence: 0.95},
		}}
		search := &searchFake{places: map[string]*model.ResolvedPlace{
			"山寺":  {Name: "山寺", Location: model.LatLng{Lat: 38.3130, Lng: 140.4380}},
			"立石寺": {Name: "立石寺", Location: model.LatLng{Lat: 38.3135, Lng: 140.4375}},
		}}
		uc := newUseCase(extraction, search, &directionsFake{err: model.ErrRouteNotFound})

		plan, err := uc.GeneratePlan(ctx, &model.ItineraryRequest{
			Text:       "上山城と山寺と立石寺とリナワールドを回りたい",
			Categories: []string{model.CategoryHistory},
		})

		require.NoError(t, err)
		// 遊園地（リナワールド）は歴史カテゴリに一致しないため行程に現れない
		for _, point := range plan.OrderedPoints {
			assert.NotEqual(t, "リナワールド", point.Name)
		}
		assert.NotEmpty(t, plan.OrderedPoints)
	})
}

func TestExtractDeclaredLegs(t *testing.T) {
	ctx := context.Background()

	t.Run("AI抽出が失敗してもパターン抽出で復元できる", func(t *testing.T) {
		extraction := &extractionFake{}
		uc := newUseCase(extraction, &searchFake{}, &directionsFake{})

		legs := uc.ExtractDeclaredLegs(ctx, "1. 古窯旅館→上山城 5.2km / 12分")

		require.Len(t, legs, 1)
		assert.Equal(t, "古窯旅館", legs[0].From)
		assert.Equal(t, "上山城", legs[0].To)
	})

	t.Run("どちらの抽出も不発なら空", func(t *testing.T) {
		uc := newUseCase(&extractionFake{}, &searchFake{}, &directionsFake{})
		assert.Empty(t, uc.ExtractDeclaredLegs(ctx, "ただの雑談です"))
	})
}
