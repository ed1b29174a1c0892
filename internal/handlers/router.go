package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/philosophy-quiz/internal/services"
	"github.com/SAP-F-2025/philosophy-quiz/internal/utils"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler  *QuizHandler
	themeHandler *ThemeHandler
}

func NewHandlerManager(
	contentService services.ContentService,
	quizService services.QuizService,
	themeService services.ThemeService,
	cookies *ClientCookies,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:  NewQuizHandler(contentService, quizService, cookies, validator, logger),
		themeHandler: NewThemeHandler(themeService, cookies, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		topics := v1.Group("/topics")
		{
			topics.GET("", hm.quizHandler.ListTopics)
			topics.GET("/:key", hm.quizHandler.GetTopic)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.quizHandler.StartSession)
			sessions.GET("/current", hm.quizHandler.CurrentSession)
			sessions.GET("/:id", hm.quizHandler.GetSession)
			sessions.DELETE("/:id", hm.quizHandler.EndSession)

			// Question interaction
			questions := sessions.Group("/:id/questions/:index")
			{
				questions.GET("", hm.quizHandler.GetQuestion)
				questions.POST("/select", hm.quizHandler.Select)
				questions.POST("/toggle", hm.quizHandler.Toggle)
				questions.POST("/answer", hm.quizHandler.Answer)
				questions.POST("/move", hm.quizHandler.Move)
				questions.POST("/pair", hm.quizHandler.Pair)
				questions.POST("/unpair", hm.quizHandler.Unpair)
				questions.POST("/submit", hm.quizHandler.Submit)
				questions.POST("/reset", hm.quizHandler.Reset)
			}
		}

		v1.POST("/evaluate", hm.quizHandler.Evaluate)

		v1.GET("/theme", hm.themeHandler.GetTheme)
		v1.PUT("/theme", hm.themeHandler.UpdateTheme)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "philosophy-quiz",
	})
}
