package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
	"github.com/temasamo/Koyo-travel-ai/internal/infrastructure/ai"
	"github.com/temasamo/Koyo-travel-ai/internal/usecase"
)

// ChatHandler 旅行AIチャットAPIのハンドラー
// 返答生成後に地名抽出を行い、ルールで自動生成が有効なら行程生成まで続ける
type ChatHandler struct {
	chatService      *ai.TravelChatService
	itineraryUseCase usecase.ItineraryUseCase
}

// NewChatHandler は新しいChatHandlerインスタンスを作成する
func NewChatHandler(chatService *ai.TravelChatService, itineraryUseCase usecase.ItineraryUseCase) *ChatHandler {
	return &ChatHandler{
		chatService:      chatService,
		itineraryUseCase: itineraryUseCase,
	}
}

type chatTravelRequest struct {
	Messages   []model.ChatMessage         `json:"messages" binding:"required,min=1"`
	Categories []string                    `json:"categories"`
	Rules      *model.RouteGenerationRules `json:"rules"`
}

// PostChatTravel は旅行プランナーの返答を生成するエンドポイント
// POST /api/chat/travel
func (h *ChatHandler) PostChatTravel(c *gin.Context) {
	var req chatTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "チャット応答の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{"reply": reply}

	// 返答から地名候補を抽出してマーカー表示用に添付する（失敗しても返答は返す）
	candidates, err := h.itineraryUseCase.ExtractCandidates(c.Request.Context(), reply)
	if err != nil {
		log.Printf("⚠️ チャット応答からの地名抽出に失敗: %v", err)
		candidates = nil
	}
	response["locations"] = candidates

	// 自動生成が有効な場合のみ、返答テキストから行程まで生成する
	rules := model.DefaultRouteGenerationRules()
	if req.Rules != nil {
		rules = *req.Rules
	}
	if rules.AutoGenerate {
		plan, err := h.itineraryUseCase.GeneratePlan(c.Request.Context(), &model.ItineraryRequest{
			Text:       reply,
			Categories: req.Categories,
			Rules:      &rules,
		})
		if err != nil {
			log.Printf("⚠️ 自動行程生成に失敗: %v", err)
		} else {
			response["plan"] = plan
		}
	}

	c.JSON(http.StatusOK, response)
}

type chatSummaryRequest struct {
	Messages []model.ChatMessage `json:"messages" binding:"required,min=1"`
}

// PostChatSummary は会話の要約を生成するエンドポイント
// POST /api/chat/summary
func (h *ChatHandler) PostChatSummary(c *gin.Context) {
	var req chatSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.chatService.Summarize(c.Request.Context(), req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "会話要約の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
