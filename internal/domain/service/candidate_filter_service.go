package service

import (
	"log"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// CandidateFilterService 抽出された地名候補の絞り込みを担当する
type CandidateFilterService struct{}

// NewCandidateFilterService は新しいCandidateFilterServiceインスタンスを作成する
func NewCandidateFilterService() *CandidateFilterService {
	return &CandidateFilterService{}
}

// Filter はルールに基づいて候補を絞り込む
// 入力が空でない限り、結果が空になることはない（描画側が「行程なし」状態に陥らないための保証）
// 抽出順（物語順）を保持し、この段階で信頼度による並べ替えは行わない
func (s *CandidateFilterService) Filter(candidates []model.LocationCandidate, rules model.RouteGenerationRules) []model.LocationCandidate {
	if len(candidates) == 0 {
		return nil
	}

	// 1. 名前の完全一致で重複排除（最初の出現と元の信頼度を残す）
	deduped := dedupeByName(candidates)

	// 2. 信頼度によるフィルタ
	filtered := make([]model.LocationCandidate, 0, len(deduped))
	for _, c := range deduped {
		if c.Confidence >= rules.MinConfidence {
			filtered = append(filtered, c)
		}
	}

	// 3. 広範囲地名の除外（件数制限より前に適用）
	if rules.ExcludeBroadAreas {
		kept := filtered[:0]
		for _, c := range filtered {
			if model.IsBroadArea(c.Name) {
				log.Printf("📍 広範囲地名を除外: %s", c.Name)
				continue
			}
			kept = append(kept, c)
		}
		filtered = kept
	}

	// 全候補が落ちた場合は最も信頼度の高い1件を残す
	if len(filtered) == 0 {
		best := highestConfidence(deduped)
		log.Printf("⚠️ フィルタで全候補が除外されたため、最有力候補を維持: %s (%.2f)", best.Name, best.Confidence)
		return []model.LocationCandidate{best}
	}

	// 4. 件数制限（先に出現したものを優先）
	if rules.MaxPoints > 0 && len(filtered) > rules.MaxPoints {
		filtered = filtered[:rules.MaxPoints]
	}

	return filtered
}

// dedupeByName 名前の完全一致で重複を除き、最初の出現を残す
func dedupeByName(candidates []model.LocationCandidate) []model.LocationCandidate {
	seen := make(map[string]struct{}, len(candidates))
	result := make([]model.LocationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		result = append(result, c)
	}
	return result
}

// highestConfidence 最も信頼度の高い候補を返す（同値の場合は先の出現を優先）
func highestConfidence(candidates []model.LocationCandidate) model.LocationCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best
}
