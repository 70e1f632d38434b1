package model

// ItineraryRequest 行程生成パイプラインへの入力
type ItineraryRequest struct {
	Text       string                `json:"text" validate:"required"`
	TravelMode TravelMode            `json:"travel_mode"`
	Categories []string              `json:"categories"` // 地図フィルタで選択中のカテゴリ（空なら全件対象）
	Rules      *RouteGenerationRules `json:"rules"`      // nilの場合はデフォルトルール
}

// GetRules リクエストのルールを返す（未指定ならデフォルト）
func (r *ItineraryRequest) GetRules() RouteGenerationRules {
	if r.Rules != nil {
		return *r.Rules
	}
	return DefaultRouteGenerationRules()
}

// GetTravelMode 移動手段を返す（未指定なら車移動）
func (r *ItineraryRequest) GetTravelMode() TravelMode {
	if r.TravelMode == "" {
		return TravelModeDriving
	}
	return r.TravelMode
}

// HasCategorySelection カテゴリフィルタが指定されているか
func (r *ItineraryRequest) HasCategorySelection() bool {
	return len(r.Categories) > 0
}
