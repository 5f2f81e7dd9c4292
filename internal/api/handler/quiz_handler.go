package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

// QuizHandler exposes the quiz orchestration endpoints.
type QuizHandler struct {
	service ports.QuizService
}

func NewQuizHandler(service ports.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

type createQuizRequest struct {
	Category string `json:"category" validate:"required"`
	Count    int    `json:"noOfQ" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required"`
}

type createQuizResponse struct {
	QuizID string `json:"quizId"`
}

// Create handles POST /quiz/create.
//
// @Summary      Create a quiz from random questions in a category
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuizRequest  true  "Quiz parameters"
// @Success      201   {object}  createQuizResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /quiz/create [post]
func (h *QuizHandler) Create(c echo.Context) error {
	var req createQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.CreateQuiz(c.Request().Context(), ports.CreateQuizInput{
		Category: req.Category,
		Count:    req.Count,
		Title:    req.Title,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createQuizResponse{QuizID: id})
}

// Get handles GET /quiz/get/:id. The returned views never include answers.
//
// @Summary      Get the questions of a quiz
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quiz id"
// @Success      200  {array}   ports.QuestionView
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /quiz/get/{id} [get]
func (h *QuizHandler) Get(c echo.Context) error {
	views, err := h.service.GetQuizQuestions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Submit handles POST /quiz/submit/:id and returns the correct count.
//
// @Summary      Submit quiz responses for scoring
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Quiz id"
// @Param        body  body      []ports.ResponseInput  true  "Responses"
// @Success      200   {integer} int
// @Failure      404   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /quiz/submit/{id} [post]
func (h *QuizHandler) Submit(c echo.Context) error {
	var responses []ports.ResponseInput
	if err := c.Bind(&responses); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	score, err := h.service.SubmitQuiz(c.Request().Context(), c.Param("id"), responses)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, score)
}

// List handles GET /quiz/all.
func (h *QuizHandler) List(c echo.Context) error {
	summaries, err := h.service.ListQuizzes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}
