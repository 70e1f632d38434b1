package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// placesFieldMask 取得フィールドを絞ってペイロードを抑える
const placesFieldMask = "places.id,places.displayName,places.location,places.rating,places.userRatingCount,places.photos,places.formattedAddress"

// GooglePlacesProvider はGoogle Places API (New) を使用した地点検索の実装
type GooglePlacesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:  apiKey,
		baseURL: "https://places.googleapis.com/v1/places:searchText",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchText はクエリに最も合致する地点を1件返す
// 判定対象は常に先頭の結果のみ。先頭に位置情報がない場合は次点を繰り上げず、
// 解決不能として (nil, nil) を返す
func (g *GooglePlacesProvider) SearchText(ctx context.Context, query string) (*model.ResolvedPlace, error) {
	payloads, err := g.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 || payloads[0].Location == nil {
		return nil, nil
	}
	return convertPlace(payloads[0]), nil
}

// SearchTextAll はクエリに合致する地点を最大limit件返す
// こちらは候補リスト用途なので、位置情報のない結果だけを除いて詰める
func (g *GooglePlacesProvider) SearchTextAll(ctx context.Context, query string, limit int) ([]*model.ResolvedPlace, error) {
	payloads, err := g.search(ctx, query)
	if err != nil {
		return nil, err
	}
	places := make([]*model.ResolvedPlace, 0, len(payloads))
	for _, p := range payloads {
		// 位置情報のない結果はマーカーを置けないので除外
		if p.Location == nil {
			continue
		}
		places = append(places, convertPlace(p))
	}
	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}
	return places, nil
}

func (g *GooglePlacesProvider) search(ctx context.Context, query string) ([]placePayload, error) {
	reqBody, err := json.Marshal(searchTextRequest{
		TextQuery:    query,
		LanguageCode: "ja",
		RegionCode:   "JP",
	})
	if err != nil {
		return nil, fmt.Errorf("リクエストのシリアライズに失敗: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", g.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", placesFieldMask)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API呼び出しエラー (status: %d): %s", resp.StatusCode, string(body))
	}

	var apiResp searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("レスポンスのパースに失敗: %w", err)
	}
	return apiResp.Places, nil
}

// convertPlace APIレスポンスの1件をドメインモデルに変換する（Locationは非nil前提）
func convertPlace(p placePayload) *model.ResolvedPlace {
	place := &model.ResolvedPlace{
		Name:             p.DisplayName.Text,
		PlaceID:          p.ID,
		Location:         model.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude},
		FormattedAddress: p.FormattedAddress,
		Rating:           p.Rating,
		UserRatingCount:  p.UserRatingCount,
	}
	if len(p.Photos) > 0 {
		place.PhotoRef = p.Photos[0].Name
	}
	return place
}

// --- Places API (New) のリクエスト/レスポンス構造体 ---

type searchTextRequest struct {
	TextQuery    string `json:"textQuery"`
	LanguageCode string `json:"languageCode"`
	RegionCode   string `json:"regionCode"`
}

type searchTextResponse struct {
	Places []placePayload `json:"places"`
}

type placePayload struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Rating           float64 `json:"rating"`
	UserRatingCount  int     `json:"userRatingCount"`
	FormattedAddress string  `json:"formattedAddress"`
	Photos           []struct {
		Name string `json:"name"`
	} `json:"photos"`
}
