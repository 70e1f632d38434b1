package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/usecase"
)

// ExtractHandler 地名・ルート抽出APIのハンドラー
type ExtractHandler struct {
	itineraryUseCase usecase.ItineraryUseCase
}

// NewExtractHandler は新しいExtractHandlerインスタンスを作成する
func NewExtractHandler(itineraryUseCase usecase.ItineraryUseCase) *ExtractHandler {
	return &ExtractHandler{itineraryUseCase: itineraryUseCase}
}

type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostExtractLocations はテキストから地名候補を抽出するエンドポイント
// POST /api/extract-locations
func (h *ExtractHandler) PostExtractLocations(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	candidates, err := h.itineraryUseCase.ExtractCandidates(c.Request.Context(), req.Text)
	if err != nil {
		// 抽出失敗は空リストとして返す（呼び出し側に致命的エラーを見せない）
		c.JSON(http.StatusOK, gin.H{"locations": []any{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": candidates})
}

// PostExtractRoute はテキストから宣言ルート区間を抽出するエンドポイント
// POST /api/ai/extract-route
func (h *ExtractHandler) PostExtractRoute(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	legs := h.itineraryUseCase.ExtractDeclaredLegs(c.Request.Context(), req.Text)
	if legs == nil {
		legs = []model.RouteLeg{}
	}

	c.JSON(http.StatusOK, gin.H{"routeSegments": legs})
}
