package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/service"
	"github.com/temasamo/Koyo-travel-ai/internal/handler"
	"github.com/temasamo/Koyo-travel-ai/internal/infrastructure/ai"
	"github.com/temasamo/Koyo-travel-ai/internal/infrastructure/maps"
	"github.com/temasamo/Koyo-travel-ai/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	googleMapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	if openAIKey == "" || googleMapsKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数:")
		fmt.Println("  - OPENAI_API_KEY")
		fmt.Println("  - GOOGLE_MAPS_API_KEY")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	// インフラストラクチャ層の初期化
	openAIClient := ai.NewOpenAIClient(openAIKey)
	extractor := ai.NewOpenAILocationExtractor(openAIClient)
	chatService := ai.NewTravelChatService(openAIClient)
	placesProvider := maps.NewGooglePlacesProvider(googleMapsKey)
	directionsProvider := maps.NewGoogleDirectionsProvider(googleMapsKey)

	// ドメインサービスの初期化
	filterService := service.NewCandidateFilterService()
	categoryService := service.NewCategoryService(placesProvider)
	resolverService := service.NewPlaceResolverService(placesProvider)
	composerService := service.NewRouteComposerService(directionsProvider)
	assembler := service.NewRoutePlanAssembler()

	// ユースケースとハンドラーの初期化
	itineraryUseCase := usecase.NewItineraryUseCase(
		extractor,
		filterService,
		categoryService,
		resolverService,
		composerService,
		assembler,
	)
	itineraryHandler := handler.NewItineraryHandler(itineraryUseCase)
	extractHandler := handler.NewExtractHandler(itineraryUseCase)
	chatHandler := handler.NewChatHandler(chatService, itineraryUseCase)
	placeHandler := handler.NewPlaceHandler(resolverService)

	r := gin.Default()

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "koyo-travel-ai"})
	})

	api := r.Group("/api")
	{
		api.POST("/itinerary", itineraryHandler.PostItinerary)
		api.POST("/extract-locations", extractHandler.PostExtractLocations)
		api.POST("/ai/extract-route", extractHandler.PostExtractRoute)
		api.POST("/chat/travel", chatHandler.PostChatTravel)
		api.POST("/chat/summary", chatHandler.PostChatSummary)
		api.POST("/places/search", placeHandler.PostPlaceSearch)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Koyo-travel-ai server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
