package usecase

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/helper"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/repository"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
)

// ItineraryUseCase 自由文から地図描画可能な行程を生成するパイプライン
type ItineraryUseCase interface {
	// GeneratePlan はテキストから行程を生成する
	// 解決できた地点が0件の場合もエラーではなく空の行程を返す
	GeneratePlan(ctx context.Context, req *model.ItineraryRequest) (*model.RoutePlan, error)

	// ExtractCandidates はテキストから地名候補のみを抽出する（チャット画面のマーカー用）
	ExtractCandidates(ctx context.Context, text string) ([]model.LocationCandidate, error)

	// ExtractDeclaredLegs はテキストから宣言ルート区間を抽出する（AI抽出＋パターン抽出）
	ExtractDeclaredLegs(ctx context.Context, text string) []model.RouteLeg
}

// itineraryUseCaseImpl はItineraryUseCaseの実装
type itineraryUseCaseImpl struct {
	extractionRepo  repository.LocationExtractionRepository
	filterService   *service.CandidateFilterService
	categoryService *service.CategoryService
	resolverService *service.PlaceResolverService
	composerService *service.RouteComposerService
	assembler       *service.RoutePlanAssembler

	// runSeq 実行の世代番号。後続の実行が始まったら先行実行の結果は破棄してよい
	runSeq atomic.Int64
}

// NewItineraryUseCase は新しいItineraryUseCaseインスタンスを作成する
func NewItineraryUseCase(
	extractionRepo repository.LocationExtractionRepository,
	filterService *service.CandidateFilterService,
	categoryService *service.CategoryService,
	resolverService *service.PlaceResolverService,
	composerService *service.RouteComposerService,
	assembler *service.RoutePlanAssembler,
) ItineraryUseCase {
	return &itineraryUseCaseImpl{
		extractionRepo:  extractionRepo,
		filterService:   filterService,
		categoryService: categoryService,
		resolverService: resolverService,
		composerService: composerService,
		assembler:       assembler,
	}
}

// GeneratePlan はテキストから行程を生成する
func (u *itineraryUseCaseImpl) GeneratePlan(ctx context.Context, req *model.ItineraryRequest) (*model.RoutePlan, error) {
	myGen := u.runSeq.Add(1)
	rules := req.GetRules()
	log.Printf("🚀 行程生成開始 (maxPoints: %d, minConfidence: %.2f)", rules.MaxPoints, rules.MinConfidence)

	// Step 1: 地名候補の抽出（失敗しても致命的ではない）
	candidates, err := u.ExtractCandidates(ctx, req.Text)
	if err != nil {
		log.Printf("⚠️ 地名抽出に失敗、空の候補で続行: %v", err)
		candidates = nil
	}
	log.Printf("📍 抽出候補: %d件", len(candidates))

	// Step 2: カテゴリ選択がある場合は一致候補の絞り込みと補完検索
	if req.HasCategorySelection() {
		candidates = u.applyCategorySelection(ctx, candidates, req.Categories)
		log.Printf("📍 カテゴリ適用後: %d件", len(candidates))
	}

	// Step 3: ルールに基づくフィルタリング
	filtered := u.filterService.Filter(candidates, rules)

	// Step 4: 宣言ルートの抽出（AI抽出 → パターン抽出 → 順序合成の順に試す）
	declaredLegs := u.ExtractDeclaredLegs(ctx, req.Text)
	if len(declaredLegs) == 0 && len(filtered) >= 2 {
		declaredLegs = helper.SynthesizeLegsFromOrder(filtered, model.DefaultOriginName)
		log.Printf("📋 候補の出現順から %d区間を合成", len(declaredLegs))
	}

	// Step 5: 候補を実在の地点へ順次解決
	resolved := u.resolverService.ResolveAll(ctx, filtered)
	log.Printf("✅ 地点解決: %d/%d件", len(resolved), len(filtered))

	// Step 6: ルート構築（失敗しても段階的フォールバックで必ず行程が返る）
	composed := u.composerService.Compose(ctx, model.OriginResolvedPlace(), resolved, req.GetTravelMode(), rules)

	// Step 7: 宣言ルートと構築済みルートの統合
	plan := u.assembler.Assemble(declaredLegs, composed, resolved)

	if u.runSeq.Load() != myGen {
		// 新しい実行が始まっている。結果は返すが、呼び出し側は表示状態の更新前に破棄してよい
		log.Printf("📋 この実行は新しい実行に追い越されました (gen: %d)", myGen)
	}

	log.Printf("🎉 行程生成完了 (地点: %d件, 区間: %d件)", len(plan.OrderedPoints), len(plan.Legs))
	return plan, nil
}

// ExtractCandidates はテキストから地名候補のみを抽出する
func (u *itineraryUseCaseImpl) ExtractCandidates(ctx context.Context, text string) ([]model.LocationCandidate, error) {
	return u.extractionRepo.ExtractLocations(ctx, text)
}

// ExtractDeclaredLegs はAI抽出とパターン抽出を順に試して宣言ルート区間を返す
// AIの往復が失敗してもルート表はパターン抽出で復元できる
func (u *itineraryUseCaseImpl) ExtractDeclaredLegs(ctx context.Context, text string) []model.RouteLeg {
	legs, err := u.extractionRepo.ExtractRouteSegments(ctx, text)
	if err != nil {
		log.Printf("⚠️ AIルート抽出に失敗、パターン抽出にフォールバック: %v", err)
	}
	if len(legs) > 0 {
		return legs
	}
	return helper.ParseRouteTable(text)
}

// applyCategorySelection 選択中カテゴリの一致候補を集め、不足分を補完検索で補う
func (u *itineraryUseCaseImpl) applyCategorySelection(ctx context.Context, candidates []model.LocationCandidate, categories []string) []model.LocationCandidate {
	var selected []model.LocationCandidate
	for _, category := range categories {
		matched := u.categoryService.FilterByCategories(candidates, []string{category})
		// 補完検索で追加された候補はカテゴリ検索の直接ヒットなのでそのまま採用する
		selected = append(selected, u.categoryService.SupplementCandidates(ctx, category, matched)...)
	}
	// 重複は後段のCandidateFilterで排除される
	return selected
}
