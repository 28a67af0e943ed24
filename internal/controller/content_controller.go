package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// Title and URL are required here so a half-filled form is rejected before
// any store call happens.
// swagger:model ContentRequest
type ContentRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=chapter video homework pastpaper"`
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required,url"`
	Order int    `json:"order"`
}

// ListContent godoc
// @Summary Course content by kind
// @Tags content
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param kind query string false "chapter | video | homework | pastpaper"
// @Success 200 {object} util.Response{data=[]model.ContentItem}
// @Router /api/courses/{id}/content [get]
func (c *ContentController) ListContent(ctx *gin.Context) {
	kind := model.ContentKind(ctx.Query("kind"))
	items, err := c.ContentService.ListByCourse(ctx.Param("id"), kind)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// CreateContent godoc
// @Summary Add course content (admin)
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body ContentRequest true "content item"
// @Success 201 {object} util.Response{data=model.ContentItem}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses/{id}/content [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item := &model.ContentItem{
		CourseID: ctx.Param("id"),
		Kind:     model.ContentKind(req.Kind),
		Title:    req.Title,
		URL:      req.URL,
		Order:    req.Order,
	}

	if err := c.ContentService.Create(ctx.Request.Context(), item); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, item)
}

// UpdateContent godoc
// @Summary Update course content (admin)
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param contentId path string true "content id"
// @Param body body ContentRequest true "content item"
// @Success 200 {object} util.Response{data=model.ContentItem}
// @Failure 404 {object} util.Response
// @Router /api/admin/content/{contentId} [put]
func (c *ContentController) UpdateContent(ctx *gin.Context) {
	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ContentService.ContentRepo.FindByID(ctx.Param("contentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	item.Kind = model.ContentKind(req.Kind)
	item.Title = req.Title
	item.URL = req.URL
	item.Order = req.Order

	if err := c.ContentService.Update(ctx.Request.Context(), item); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, item)
}

// DeleteContent godoc
// @Summary Delete course content (admin)
// @Tags content
// @Produce json
// @Security ApiKeyAuth
// @Param contentId path string true "content id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/content/{contentId} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	if err := c.ContentService.Delete(ctx.Request.Context(), ctx.Param("contentId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
