package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/repository"
)

// PlaceResolverService 地名候補をPlaces検索で実在の地点に解決する
// 同一クエリの解決結果はプロセス生存期間キャッシュされる（明示的な破棄はプロセス再起動のみ）
type PlaceResolverService struct {
	searchRepo repository.PlaceSearchRepository

	mu    sync.RWMutex
	cache map[string]*model.ResolvedPlace
}

// NewPlaceResolverService は新しいPlaceResolverServiceインスタンスを作成する
// 古窯旅館とスタッフおすすめスポットは座標既知のためキャッシュに事前投入する
func NewPlaceResolverService(searchRepo repository.PlaceSearchRepository) *PlaceResolverService {
	s := &PlaceResolverService{
		searchRepo: searchRepo,
		cache:      make(map[string]*model.ResolvedPlace),
	}
	s.preseed(model.OriginResolvedPlace())
	for _, spot := range model.StaffRecommendedSpots {
		s.preseed(spot)
	}
	return s
}

// preseed 座標既知の地点をキャッシュに登録する（ネットワーク呼び出しを回避）
func (s *PlaceResolverService) preseed(place *model.ResolvedPlace) {
	s.cache[s.buildQuery(place.Name)] = place
}

// buildQuery 候補名に地域修飾子を付けた検索クエリを構築する
// 同名の観光地が全国にあるため、地域修飾子で曖昧さを解消する
func (s *PlaceResolverService) buildQuery(name string) string {
	return strings.TrimSpace(name) + " " + model.RegionQualifier
}

// Resolve は候補1件を実在の地点に解決する
// プロバイダが位置情報を返さなかった場合は (nil, nil) を返し、候補は静かに破棄される
func (s *PlaceResolverService) Resolve(ctx context.Context, candidate model.LocationCandidate) (*model.ResolvedPlace, error) {
	query := s.buildQuery(candidate.Name)

	// キャッシュヒット時はネットワーク呼び出しなし
	s.mu.RLock()
	cached, ok := s.cache[query]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	place, err := s.searchRepo.SearchText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("地点検索に失敗 (%s): %w", candidate.Name, err)
	}
	if place == nil {
		return nil, nil
	}

	// 同一キーへの書き込みは等価な値なので後勝ちで問題ない
	s.mu.Lock()
	s.cache[query] = place
	s.mu.Unlock()

	return place, nil
}

// ResolveAll は候補リストを順次解決する
// プロバイダのレート・コスト制限を考慮し、意図的に並行化しない
// 1件の失敗は後続候補の解決を妨げない
func (s *PlaceResolverService) ResolveAll(ctx context.Context, candidates []model.LocationCandidate) []*model.ResolvedPlace {
	resolved := make([]*model.ResolvedPlace, 0, len(candidates))
	for _, candidate := range candidates {
		place, err := s.Resolve(ctx, candidate)
		if err != nil {
			log.Printf("❌ 地点検索エラー (%s): %v", candidate.Name, err)
			continue
		}
		if place == nil {
			log.Printf("⚠️ 地点が見つからないため候補を破棄: %s", candidate.Name)
			continue
		}
		resolved = append(resolved, place)
	}
	return resolved
}
