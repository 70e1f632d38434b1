package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/usecase"
)

// ItineraryHandler 行程生成APIのハンドラー
type ItineraryHandler struct {
	itineraryUseCase usecase.ItineraryUseCase
}

// NewItineraryHandler は新しいItineraryHandlerインスタンスを作成する
func NewItineraryHandler(itineraryUseCase usecase.ItineraryUseCase) *ItineraryHandler {
	return &ItineraryHandler{itineraryUseCase: itineraryUseCase}
}

// PostItinerary はテキストから行程を生成するエンドポイント
// POST /api/itinerary
func (h *ItineraryHandler) PostItinerary(c *gin.Context) {
	var req model.ItineraryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	plan, err := h.itineraryUseCase.GeneratePlan(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "行程の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	// 地点0件は正常系の空結果（描画側はニュートラルな空状態を表示する）
	c.JSON(http.StatusOK, gin.H{
		"plan":     plan,
		"is_empty": plan.IsEmpty(),
	})
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *ItineraryHandler) validateRequest(req *model.ItineraryRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return &ValidationError{Field: "text", Message: "テキストは必須です"}
	}

	if req.TravelMode != "" && req.TravelMode != model.TravelModeDriving && req.TravelMode != model.TravelModeWalking {
		return &ValidationError{Field: "travel_mode", Message: "travel_modeは'driving'または'walking'を指定してください"}
	}

	for _, category := range req.Categories {
		if _, ok := model.CategoryNameMap[category]; !ok {
			return &ValidationError{Field: "categories", Message: "未知のカテゴリです: " + category}
		}
	}

	if req.Rules != nil {
		if req.Rules.MaxPoints < 0 {
			return &ValidationError{Field: "rules.max_points", Message: "max_pointsは0以上で指定してください"}
		}
		if req.Rules.MinConfidence < 0 || req.Rules.MinConfidence > 1 {
			return &ValidationError{Field: "rules.min_confidence", Message: "min_confidenceは0から1の範囲で指定してください"}
		}
	}

	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
