package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	polyline "github.com/twpayne/go-polyline"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した経路検索の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com/maps/api/directions/json",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRoute はDirections APIを呼び出して複数地点の経路情報を取得する
// ZERO_RESULTSは想定内の結果であり model.ErrRouteNotFound として返す
func (g *GoogleDirectionsProvider) GetRoute(ctx context.Context, req *model.DirectionsRequest) (*model.RouteDetails, error) {
	// 1. APIリクエストURLを構築
	reqURL := g.buildURL(req)

	// 2. HTTPリクエストを作成・実行
	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	// 3. JSONレスポンスをパース
	var apiResp directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status == "ZERO_RESULTS" || len(apiResp.Routes) == 0 {
		return nil, model.ErrRouteNotFound
	}
	if apiResp.Status != "OK" {
		return nil, fmt.Errorf("経路検索エラー (status: %s): %s", apiResp.Status, apiResp.ErrorMessage)
	}

	// 4. ドメインモデルに変換して返す
	return convertRoute(&apiResp.Routes[0]), nil
}

func (g *GoogleDirectionsProvider) buildURL(req *model.DirectionsRequest) string {
	params := url.Values{}
	params.Set("origin", formatLatLng(req.Origin))
	params.Set("destination", formatLatLng(req.Destination))

	if len(req.Waypoints) > 0 {
		viaPoints := make([]string, 0, len(req.Waypoints))
		for _, wp := range req.Waypoints {
			viaPoints = append(viaPoints, formatLatLng(wp))
		}
		value := strings.Join(viaPoints, "|")
		// optimize:true を付けると経由地順の最適化が行われる（上位課金枠）
		if req.OptimizeWaypoints {
			value = "optimize:true|" + value
		}
		params.Set("waypoints", value)
	}

	mode := string(req.Mode)
	if mode == "" {
		mode = string(model.TravelModeDriving)
	}
	params.Set("mode", mode)
	params.Set("language", "ja")
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
}

func formatLatLng(p model.LatLng) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

// convertRoute APIレスポンスの1ルートをドメインモデルに変換する
// 各区間の道路形状はステップ単位のポリラインをデコードして連結する
func convertRoute(r *route) *model.RouteDetails {
	details := &model.RouteDetails{
		OverviewPolyline: r.OverviewPolyline.Points,
		WaypointOrder:    r.WaypointOrder,
	}

	for _, l := range r.Legs {
		geometry := model.RouteLegGeometry{
			DistanceText: l.Distance.Text,
			DurationText: l.Duration.Text,
		}
		for _, step := range l.Steps {
			coords, _, err := polyline.DecodeCoords([]byte(step.Polyline.Points))
			if err != nil {
				continue
			}
			for _, c := range coords {
				geometry.Path = append(geometry.Path, model.LatLng{Lat: c[0], Lng: c[1]})
			}
		}
		details.Legs = append(details.Legs, geometry)
	}
	return details
}

// --- Directions APIのレスポンスをパースするための構造体 ---

type directionsResponse struct {
	Routes       []route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type route struct {
	Legs             []leg            `json:"legs"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
	WaypointOrder    []int            `json:"waypoint_order"`
}

type leg struct {
	Distance textValue `json:"distance"`
	Duration textValue `json:"duration"`
	Steps    []step    `json:"steps"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type step struct {
	Polyline overviewPolyline `json:"polyline"`
}

type overviewPolyline struct {
	Points string `json:"points"`
}
