package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/services"
	"github.com/SAP-F-2025/philosophy-quiz/internal/utils"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/gin-gonic/gin"
)

// ===== REQUEST PAYLOADS =====

type StartSessionRequest struct {
	TopicKey string `json:"topic_key" validate:"required"`
}

type OptionRequest struct {
	Option *int `json:"option" validate:"required"`
}

type AnswerRowRequest struct {
	Row   *int  `json:"row" validate:"required"`
	Value *bool `json:"value" validate:"required"`
}

// MoveRequest addresses containers as "pool" or a bin index string.
type MoveRequest struct {
	Item string                 `json:"item" validate:"required"`
	From *interaction.Container `json:"from" validate:"required"`
	To   *interaction.Container `json:"to" validate:"required"`
}

type PairRequest struct {
	Left  *int   `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

type UnpairRequest struct {
	Left *int `json:"left" validate:"required"`
}

type QuizHandler struct {
	BaseHandler
	contentService services.ContentService
	quizService    services.QuizService
	cookies        *ClientCookies
	validator      *validator.Validator
}

func NewQuizHandler(
	contentService services.ContentService,
	quizService services.QuizService,
	cookies *ClientCookies,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
		quizService:    quizService,
		cookies:        cookies,
		validator:      validator,
	}
}

// bind decodes and validates the JSON body, writing a 400 on failure.
func (h *QuizHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		h.handleServiceError(c, err)
		return false
	}
	return true
}

// ===== TOPICS =====

// ListTopics returns the loaded topics in content order
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {array} models.TopicSummary
// @Router /topics [get]
func (h *QuizHandler) ListTopics(c *gin.Context) {
	h.LogRequest(c, "Listing topics")

	topics, err := h.contentService.ListTopics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// GetTopic returns one topic including its questions
// @Summary Get topic
// @Tags topics
// @Produce json
// @Param key path string true "Topic key"
// @Success 200 {object} models.Topic
// @Failure 404 {object} ErrorResponse
// @Router /topics/{key} [get]
func (h *QuizHandler) GetTopic(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	topic, err := h.contentService.GetTopic(c.Request.Context(), key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

// ===== SESSIONS =====

// StartSession starts a play session and remembers it in the client cookie
// @Summary Start session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Topic to play"
// @Success 201 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions [post]
func (h *QuizHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if !h.bind(c, &req) {
		return
	}
	h.LogRequest(c, "Starting session", "topic_key", req.TopicKey)

	view, err := h.quizService.StartSession(c.Request.Context(), req.TopicKey)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.cookies.SetCurrentSession(c, view.ID); err != nil {
		h.LogError(c, err, "Failed to save session cookie", "session_id", view.ID)
	}

	c.JSON(http.StatusCreated, view)
}

// CurrentSession returns the session stored in the client cookie
func (h *QuizHandler) CurrentSession(c *gin.Context) {
	sessionID, ok := h.cookies.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No active session"})
		return
	}

	view, err := h.quizService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) GetSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	view, err := h.quizService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// EndSession ends the session and returns its final state
// @Summary End session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *QuizHandler) EndSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	h.LogRequest(c, "Ending session")

	view, err := h.quizService.EndSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.cookies.ClearCurrentSession(c, sessionID); err != nil {
		h.LogError(c, err, "Failed to clear session cookie")
	}

	c.JSON(http.StatusOK, view)
}

// ===== QUESTIONS =====

// questionParams reads the session ID and question index from the path.
func questionParams(c *gin.Context) (string, int, bool) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return "", 0, false
	}
	index, ok := ParseIndexParam(c, "index")
	if !ok {
		return "", 0, false
	}
	return sessionID, index, true
}

func (h *QuizHandler) respondAction(c *gin.Context, result *services.ActionResult, err error) {
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) GetQuestion(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}

	view, err := h.quizService.GetQuestion(c.Request.Context(), sessionID, index)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Select picks the answer of a single-choice question and grades it at once
// @Summary Select option
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Question index"
// @Param request body OptionRequest true "Option index"
// @Success 200 {object} services.ActionResult
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/questions/{index}/select [post]
func (h *QuizHandler) Select(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req OptionRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.Select(c.Request.Context(), sessionID, index, *req.Option)
	h.respondAction(c, result, err)
}

func (h *QuizHandler) Toggle(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req OptionRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.Toggle(c.Request.Context(), sessionID, index, *req.Option)
	h.respondAction(c, result, err)
}

func (h *QuizHandler) Answer(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req AnswerRowRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.AnswerRow(c.Request.Context(), sessionID, index, *req.Row, *req.Value)
	h.respondAction(c, result, err)
}

// Move drags an item between the pool and the bins. A stale source container
// leaves the state unchanged and reports changed=false.
func (h *QuizHandler) Move(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req MoveRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.Move(c.Request.Context(), sessionID, index, req.Item, *req.From, *req.To)
	h.respondAction(c, result, err)
}

func (h *QuizHandler) Pair(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req PairRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.Pair(c.Request.Context(), sessionID, index, *req.Left, req.Right)
	h.respondAction(c, result, err)
}

func (h *QuizHandler) Unpair(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	var req UnpairRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.quizService.Unpair(c.Request.Context(), sessionID, index, *req.Left)
	h.respondAction(c, result, err)
}

// Submit grades the current answer. Incomplete true/false grids get a 422
// listing the unanswered rows.
// @Summary Submit answer
// @Tags questions
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Question index"
// @Success 200 {object} services.ActionResult
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/questions/{index}/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Submitting answer", "question_index", index)

	result, err := h.quizService.Submit(c.Request.Context(), sessionID, index)
	h.respondAction(c, result, err)
}

func (h *QuizHandler) Reset(c *gin.Context) {
	sessionID, index, ok := questionParams(c)
	if !ok {
		return
	}

	result, err := h.quizService.Reset(c.Request.Context(), sessionID, index)
	h.respondAction(c, result, err)
}

// ===== STATELESS GRADING =====

// Evaluate grades a complete answer without touching any session
// @Summary Evaluate answer
// @Tags grading
// @Accept json
// @Produce json
// @Param request body services.EvaluateRequest true "Question and answer"
// @Success 200 {object} evaluator.Verdict
// @Failure 400 {object} ErrorResponse
// @Router /evaluate [post]
func (h *QuizHandler) Evaluate(c *gin.Context) {
	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	verdict, err := h.quizService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, verdict)
}
