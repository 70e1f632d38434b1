package model

import "strings"

// 出発地点（古窯旅館）の定数
const (
	DefaultOriginName = "古窯旅館"
	RegionQualifier   = "山形県" // 同名地点の全国的な曖昧さを避けるための地域修飾子
)

// DefaultOriginLocation 古窯旅館の座標
var DefaultOriginLocation = LatLng{Lat: 38.1493, Lng: 140.2648}

// CategoryConstants 地図フィルタで使用するカテゴリの定数
const (
	CategoryHistory  = "history"
	CategoryNature   = "nature"
	CategoryActivity = "activity"
	CategoryFood     = "food"
)

// CategoryNameMap カテゴリIDから日本語名へのマッピング
var CategoryNameMap = map[string]string{
	CategoryHistory:  "歴史",
	CategoryNature:   "自然",
	CategoryActivity: "遊ぶ",
	CategoryFood:     "食べる",
}

// categoryKeywords カテゴリ判定に使う語彙パターン
// 座標ではなく地名・施設名の字面だけで判定する
var categoryKeywords = map[string][]string{
	CategoryHistory:  {"城", "寺", "神社", "仏閣", "史跡", "資料館", "郷土館", "武家屋敷", "旧跡"},
	CategoryNature:   {"山", "滝", "湖", "沼", "公園", "高原", "川", "渓谷", "お釜", "森"},
	CategoryActivity: {"ワールド", "スキー", "ロープウェイ", "体験", "牧場", "アスレチック", "温泉"},
	CategoryFood:     {"グルメ", "食堂", "レストラン", "カフェ", "珈琲", "そば", "ラーメン", "スイーツ", "市場"},
}

// CategorySearchQueryMap カテゴリ補完検索に使うPlaces検索クエリ
var CategorySearchQueryMap = map[string]string{
	CategoryHistory:  "上山市 歴史 観光名所",
	CategoryNature:   "上山市 自然 絶景スポット",
	CategoryActivity: "上山市 レジャー施設",
	CategoryFood:     "上山市 グルメ 人気店",
}

// MatchesCategory 地名がカテゴリの語彙パターンに一致するか判定する
// 1つの地名が複数カテゴリに一致することもあれば、どれにも一致しないこともある
func MatchesCategory(name, category string) bool {
	keywords, ok := categoryKeywords[category]
	if !ok {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// GetAllCategories 全カテゴリの一覧を取得する
func GetAllCategories() []string {
	return []string{
		CategoryHistory,
		CategoryNature,
		CategoryActivity,
		CategoryFood,
	}
}

// GetCategoryJapaneseName カテゴリIDから日本語名を取得する
func GetCategoryJapaneseName(category string) string {
	if name, ok := CategoryNameMap[category]; ok {
		return name
	}
	return category
}

// broadAreaNames 単一マーカーの位置としては広すぎる行政区域名
// 完全一致で判定する
var broadAreaNames = map[string]struct{}{
	"山形":   {},
	"山形県":  {},
	"山形市":  {},
	"上山":   {},
	"上山市":  {},
	"天童市":  {},
	"米沢市":  {},
	"南陽市":  {},
	"東京":   {},
	"東京都":  {},
	"宮城県":  {},
	"仙台市":  {},
	"蔵王町":  {},
	"東北":   {},
	"東北地方": {},
}

// IsBroadArea 地名が県・市・町レベルの広範囲地名かどうか判定する
func IsBroadArea(name string) bool {
	trimmed := strings.TrimSpace(name)
	if _, ok := broadAreaNames[trimmed]; ok {
		return true
	}
	// 既知リストにない場合も、県・都・府で終わる名前は広域とみなす
	return strings.HasSuffix(trimmed, "県") ||
		strings.HasSuffix(trimmed, "都") ||
		strings.HasSuffix(trimmed, "府")
}

// StaffRecommendedSpots スタッフ厳選のおすすめスポット（座標は事前調査済み）
// PlaceResolverのキャッシュに起動時投入され、ネットワーク呼び出しを経由しない
var StaffRecommendedSpots = []*ResolvedPlace{
	{Name: "上山城", Location: LatLng{Lat: 38.1435, Lng: 140.2734}, Rating: 4.2},
	{Name: "リナワールド", Location: LatLng{Lat: 38.1500, Lng: 140.2800}, Rating: 4.5},
	{Name: "蔵王温泉", Location: LatLng{Lat: 38.2000, Lng: 140.3000}, Rating: 4.3},
	{Name: "くぐり滝", Location: LatLng{Lat: 38.1200, Lng: 140.2500}, Rating: 4.1},
}

// OriginResolvedPlace 古窯旅館を解決済み地点として返す
func OriginResolvedPlace() *ResolvedPlace {
	return &ResolvedPlace{
		Name:     DefaultOriginName,
		Location: DefaultOriginLocation,
	}
}
