package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Service *service.EvaluationService
}

func NewEvaluationController(svc *service.EvaluationService) *EvaluationController {
	return &EvaluationController{Service: svc}
}

// @Summary Create an evaluation item
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EvaluationRequest true "Evaluation fields"
// @Success 201 {object} util.Response
// @Router /api/evaluations [post]
func (c *EvaluationController) Create(ctx *gin.Context) {
	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.Service.Create(req)
	if err == util.ErrScopeConflict || err == util.ErrScopeNotFound {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, item)
}

// @Summary List evaluation items
// @Tags Evaluations
// @Produce json
// @Security ApiKeyAuth
// @Param kind query string false "assessment | exam | assignment"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/evaluations [get]
func (c *EvaluationController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := c.Service.List(ctx.Query("kind"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Evaluation detail with questions and counts
// @Tags Evaluations
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id} [get]
func (c *EvaluationController) Get(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	detail, err := c.Service.GetDetail(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if detail == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Update an evaluation item
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Param body body service.EvaluationRequest true "Evaluation fields"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id} [put]
func (c *EvaluationController) Update(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.Service.Update(id, req)
	if err == util.ErrScopeConflict || err == util.ErrScopeNotFound {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if item == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, item)
}

// @Summary Delete an evaluation item
// @Tags Evaluations
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id} [delete]
func (c *EvaluationController) Delete(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	if err := c.Service.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Start an attempt against an evaluation
// @Tags Evaluations
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Evaluation ID"
// @Success 201 {object} util.Response
// @Router /api/evaluations/{id}/attempts [post]
func (c *EvaluationController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid evaluation id")
		return
	}

	attempt, err := c.Service.RecordAttempt(id, user.UserID)
	if err == util.ErrAttemptLimit {
		util.Forbidden(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if attempt == nil {
		util.NotFound(ctx)
		return
	}

	util.Created(ctx, attempt)
}
