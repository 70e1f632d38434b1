package service

import (
	"context"
	"log"
	"sync"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/repository"
)

// minUsefulCategoryCount カテゴリ選択時に補完検索なしで十分とみなす候補数
const minUsefulCategoryCount = 3

// supplementSearchLimit カテゴリ補完検索で取得する最大件数
const supplementSearchLimit = 5

// supplementConfidence 補完検索で得た地点に与える信頼度
// プロバイダ直接ヒットは自由文抽出より信頼できるため高めの固定値とする
const supplementConfidence = 0.95

// CategoryService カテゴリ分類とカテゴリ補完検索を担当する
type CategoryService struct {
	placeSearchRepo repository.PlaceSearchRepository

	mu    sync.RWMutex
	cache map[string][]model.LocationCandidate // カテゴリキー別の補完検索キャッシュ
}

// NewCategoryService は新しいCategoryServiceインスタンスを作成する
func NewCategoryService(placeSearchRepo repository.PlaceSearchRepository) *CategoryService {
	return &CategoryService{
		placeSearchRepo: placeSearchRepo,
		cache:           make(map[string][]model.LocationCandidate),
	}
}

// Matches 地名がカテゴリに一致するか判定する（字面のみ、座標は見ない）
func (s *CategoryService) Matches(name, category string) bool {
	return model.MatchesCategory(name, category)
}

// FilterByCategories 選択中カテゴリのいずれかに一致する候補だけを返す
// カテゴリ未選択（空スライス）の場合は全候補をそのまま返す
func (s *CategoryService) FilterByCategories(candidates []model.LocationCandidate, categories []string) []model.LocationCandidate {
	if len(categories) == 0 {
		return candidates
	}
	var matched []model.LocationCandidate
	for _, c := range candidates {
		for _, category := range categories {
			if s.Matches(c.Name, category) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

// SupplementCandidates はカテゴリに一致する候補が少ない場合にPlaces検索で補完する
// 同じカテゴリの繰り返しトグルでネットワーク呼び出しを繰り返さないよう、結果はカテゴリキーでキャッシュする
func (s *CategoryService) SupplementCandidates(ctx context.Context, category string, existing []model.LocationCandidate) []model.LocationCandidate {
	matchCount := 0
	for _, c := range existing {
		if s.Matches(c.Name, category) {
			matchCount++
		}
	}
	if matchCount >= minUsefulCategoryCount {
		return existing
	}

	supplements := s.searchCategoryPlaces(ctx, category)
	if len(supplements) == 0 {
		return existing
	}

	log.Printf("✅ カテゴリ「%s」の補完候補 %d件を追加", model.GetCategoryJapaneseName(category), len(supplements))
	return mergeCandidates(existing, supplements)
}

// searchCategoryPlaces カテゴリキーワードでPlaces検索を行う（キャッシュ優先）
func (s *CategoryService) searchCategoryPlaces(ctx context.Context, category string) []model.LocationCandidate {
	s.mu.RLock()
	cached, ok := s.cache[category]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	query, ok := model.CategorySearchQueryMap[category]
	if !ok {
		return nil
	}

	places, err := s.placeSearchRepo.SearchTextAll(ctx, query, supplementSearchLimit)
	if err != nil {
		// 補完検索の失敗は致命的ではない（既存候補のみで続行）
		log.Printf("⚠️ カテゴリ補完検索に失敗 (%s): %v", category, err)
		return nil
	}

	candidates := make([]model.LocationCandidate, 0, len(places))
	for _, place := range places {
		candidates = append(candidates, model.LocationCandidate{
			Name:       place.Name,
			Type:       model.LocationTypeAttraction,
			Confidence: supplementConfidence,
		})
	}

	s.mu.Lock()
	s.cache[category] = candidates
	s.mu.Unlock()

	return candidates
}

// mergeCandidates 既存候補と補完候補を名前重複なしで結合する
func mergeCandidates(existing, supplements []model.LocationCandidate) []model.LocationCandidate {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]model.LocationCandidate, 0, len(existing)+len(supplements))
	for _, c := range existing {
		seen[c.Name] = struct{}{}
		merged = append(merged, c)
	}
	for _, c := range supplements {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		merged = append(merged, c)
	}
	return merged
}
