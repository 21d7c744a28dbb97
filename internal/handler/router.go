package handler

import "github.com/gin-gonic/gin"

func NewRouter(allowedOrigins []string, h *SentimentHandler) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), Recovery(), CORS(allowedOrigins))

	r.GET("/health", h.GetHealth)
	r.POST("/process_text", h.ProcessText)

	return r
}
