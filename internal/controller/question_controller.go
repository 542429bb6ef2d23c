package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary List questions of an evaluation
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	evaluationID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	questions, err := c.Service.ListQuestions(evaluationID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Get a question
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.Service.GetQuestion(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if question == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, question)
}

// @Summary Add a question to an evaluation
// @Tags Question Bank
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Param body body service.QuestionCreateRequest true "Question fields"
// @Success 201 {object} util.Response
// @Router /api/evaluations/{id}/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	evaluationID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(evaluationID, req, util.ActorID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary Update a question
// @Tags Question Bank
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Param body body service.QuestionUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateQuestion(id, req, util.ActorID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if question == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Reorder the questions of an evaluation
// @Tags Question Bank
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Param body body service.ReorderRequest true "New order"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id}/questions/reorder [put]
func (c *QuestionController) Reorder(ctx *gin.Context) {
	evaluationID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	var req service.ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.Reorder(evaluationID, req.Items)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Publish a question
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId}/publish [post]
func (c *QuestionController) Publish(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.Service.Publish(id, util.ActorID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if question == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, question)
}

// @Summary Unpublish a question
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId}/unpublish [post]
func (c *QuestionController) Unpublish(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.Service.Unpublish(id, util.ActorID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if question == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, question)
}

// @Summary Change history of a question
// @Tags Question Bank
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId}/history [get]
func (c *QuestionController) GetHistory(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	entries, err := c.Service.GetHistory(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
