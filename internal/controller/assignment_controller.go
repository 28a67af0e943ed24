package controller

import (
	"errors"
	"io"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentController struct {
	CatalogService *service.CatalogService
}

func NewAssignmentController(catalogService *service.CatalogService) *AssignmentController {
	return &AssignmentController{CatalogService: catalogService}
}

// swagger:model AssignmentRequest
type AssignmentRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
}

// GetCatalog godoc
// @Summary Assignment catalog for a course
// @Description Fresh snapshot of the course's assignments, ordered by id
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{id}/assignments [get]
func (c *AssignmentController) GetCatalog(ctx *gin.Context) {
	assignments, err := c.CatalogService.Snapshot(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// WatchCatalog godoc
// @Summary Stream catalog snapshots for a course
// @Description Server-sent events: the full catalog immediately, then again after every catalog change, until the client disconnects
// @Tags assignments
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Router /api/courses/{id}/assignments/watch [get]
func (c *AssignmentController) WatchCatalog(ctx *gin.Context) {
	snapshots := make(chan []*model.Assignment, 1)
	handle, err := c.CatalogService.SubscribeCatalog(ctx.Request.Context(), ctx.Param("id"), func(catalog []*model.Assignment) {
		select {
		case snapshots <- catalog:
		default: // client still draining the previous snapshot
		}
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer handle.Close()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case catalog := <-snapshots:
			ctx.SSEvent("catalog", catalog)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// CreateAssignment godoc
// @Summary Create an assignment (admin)
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body AssignmentRequest true "assignment"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses/{id}/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.CatalogService.Create(ctx.Request.Context(), ctx.Param("id"), req.Title, req.Description, req.DueAt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, assignment)
}

// UpdateAssignment godoc
// @Summary Update an assignment (admin)
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path string true "assignment id"
// @Param body body AssignmentRequest true "assignment"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/admin/assignments/{assignmentId} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.CatalogService.Update(ctx.Request.Context(), ctx.Param("assignmentId"), req.Title, req.Description, req.DueAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, assignment)
}

// DeleteAssignment godoc
// @Summary Delete an assignment (admin)
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path string true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/assignments/{assignmentId} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	if err := c.CatalogService.Delete(ctx.Request.Context(), ctx.Param("assignmentId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
