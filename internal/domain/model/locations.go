package model

// LatLng 緯度経度を表す基本的な型（経路検索などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationType 抽出された地名の粗い分類
type LocationType string

const (
	LocationTypePrefecture LocationType = "prefecture"
	LocationTypeCity       LocationType = "city"
	LocationTypeAttraction LocationType = "attraction"
	LocationTypeFacility   LocationType = "facility"
	LocationTypeStation    LocationType = "station"
)

// LocationCandidate テキストから抽出された地名候補（まだ実在確認されていない）
type LocationCandidate struct {
	Name       string       `json:"name"`
	Type       LocationType `json:"type"`
	Confidence float64      `json:"confidence"` // 0.0〜1.0
}

// ResolvedPlace Places APIで実在確認済みの地点
type ResolvedPlace struct {
	Name             string  `json:"name"`
	PlaceID          string  `json:"place_id,omitempty"`
	Location         LatLng  `json:"location"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	UserRatingCount  int     `json:"user_rating_count,omitempty"`
	PhotoRef         string  `json:"photo_ref,omitempty"` // 先頭の写真リソース名
}

// ChatMessage 旅行AIチャットの1メッセージ
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}
