package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
)

// PlaceHandler 地点検索APIのハンドラー
type PlaceHandler struct {
	resolverService *service.PlaceResolverService
}

// NewPlaceHandler は新しいPlaceHandlerインスタンスを作成する
func NewPlaceHandler(resolverService *service.PlaceResolverService) *PlaceHandler {
	return &PlaceHandler{resolverService: resolverService}
}

type placeSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// PostPlaceSearch は地名を実在の地点に解決するエンドポイント
// POST /api/places/search
func (h *PlaceHandler) PostPlaceSearch(c *gin.Context) {
	var req placeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	place, err := h.resolverService.Resolve(c.Request.Context(), model.LocationCandidate{
		Name: req.Query,
		Type: model.LocationTypeAttraction,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "地点検索に失敗しました",
			"details": err.Error(),
		})
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "地点が見つかりませんでした",
		})
		return
	}

	c.JSON(http.StatusOK, place)
}
