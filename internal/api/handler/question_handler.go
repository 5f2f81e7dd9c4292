package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

// QuestionHandler exposes the question store, including the three
// inter-service endpoints consumed by the quiz service.
type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

type addQuestionRequest struct {
	Title      string `json:"questionTitle" validate:"required"`
	Option1    string `json:"option1" validate:"required"`
	Option2    string `json:"option2" validate:"required"`
	Option3    string `json:"option3" validate:"required"`
	Option4    string `json:"option4" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
}

// ListAll handles GET /question/allQuestions. Admin view: includes answers.
//
// @Summary      List all questions
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Question
// @Router       /question/allQuestions [get]
func (h *QuestionHandler) ListAll(c echo.Context) error {
	questions, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}

// ListByCategory handles GET /question/category/:category.
func (h *QuestionHandler) ListByCategory(c echo.Context) error {
	questions, err := h.service.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}

// Add handles POST /question/addQuestion (admin only).
//
// @Summary      Add a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addQuestionRequest  true  "Question"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /question/addQuestion [post]
func (h *QuestionHandler) Add(c echo.Context) error {
	var req addQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Add(c.Request().Context(), ports.AddQuestionInput{
		Title:      req.Title,
		Option1:    req.Option1,
		Option2:    req.Option2,
		Option3:    req.Option3,
		Option4:    req.Option4,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// Delete handles DELETE /question/:id (admin only).
func (h *QuestionHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Generate handles GET /question/generate?category=X&noOfQ=N. Inter-service
// endpoint: returns random question ids for a new quiz.
func (h *QuestionHandler) Generate(c echo.Context) error {
	category := c.QueryParam("category")
	count, err := strconv.Atoi(c.QueryParam("noOfQ"))
	if err != nil {
		return domain.ErrInvalidInput
	}

	ids, err := h.service.SelectRandomIDs(c.Request().Context(), category, count)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, ids)
}

// GetQuestions handles POST /question/getQuestions. Inter-service endpoint:
// resolves ids to answer-free views.
func (h *QuestionHandler) GetQuestions(c echo.Context) error {
	var ids []string
	if err := c.Bind(&ids); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	views, err := h.service.ViewsByIDs(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetScore handles POST /question/getScore. Inter-service endpoint: scores
// free-text responses against stored answers.
func (h *QuestionHandler) GetScore(c echo.Context) error {
	var responses []ports.ResponseInput
	if err := c.Bind(&responses); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	score, err := h.service.Score(c.Request().Context(), responses)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, score)
}
