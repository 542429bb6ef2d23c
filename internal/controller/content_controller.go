package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary Upload a content library file
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string false "Display title"
// @Param file formData file true "File"
// @Success 201 {object} util.Response
// @Router /api/content/upload [post]
func (c *ContentController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		title = file.Filename
	}

	res, err := c.Service.Upload(ctx.Request.Context(), user.UserID, title, file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, res)
}

// @Summary List content resources
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "video | document | image"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	resources, total, err := c.Service.List(ctx.Query("type"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  resources,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Get a content resource
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response
// @Router /api/content/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid resource id")
		return
	}

	res, err := c.Service.Get(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if res == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, res)
}

// @Summary Delete a content resource
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response
// @Router /api/content/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid resource id")
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
