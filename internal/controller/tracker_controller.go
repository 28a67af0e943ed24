package controller

import (
	"errors"
	"net/http"
	"time"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrackerController drives the admin homework-tracking screen and the
// student's own homework view.
type TrackerController struct {
	TrackerService *service.TrackerService
	ReportService  *service.ReportService
}

func NewTrackerController(trackerService *service.TrackerService, reportService *service.ReportService) *TrackerController {
	return &TrackerController{
		TrackerService: trackerService,
		ReportService:  reportService,
	}
}

func rosterQuery(ctx *gin.Context) (service.RosterFilter, service.RosterSort) {
	filter := service.RosterFilter{
		Course: ctx.DefaultQuery("course", "all"),
		School: ctx.DefaultQuery("school", "all"),
		Query:  ctx.Query("q"),
	}
	order := service.RosterSort{
		Key:  ctx.Query("sort"),
		Desc: ctx.Query("dir") == "desc",
	}
	return filter, order
}

// GetTrackerView godoc
// @Summary Homework tracker roster (admin)
// @Description Reconciled effective statuses for one assignment, filtered and sorted, with the operator's pending edits applied
// @Tags tracker
// @Produce json
// @Security ApiKeyAuth
// @Param assignment query string true "assignment id"
// @Param course query string false "course id or all"
// @Param school query string false "school or all"
// @Param q query string false "name or student number substring"
// @Param sort query string false "name | number | school | status | done"
// @Param dir query string false "asc | desc"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/admin/tracker [get]
func (c *TrackerController) GetTrackerView(ctx *gin.Context) {
	assignmentID := ctx.Query("assignment")
	if assignmentID == "" {
		util.BadRequest(ctx, "assignment parameter is required")
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	filter, order := rosterQuery(ctx)
	rows, assignment, err := c.TrackerService.View(time.Now(), user.UserID, assignmentID, filter, order)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"assignment": assignment,
		"rows":       rows,
		"pending":    c.TrackerService.PendingCount(user.UserID),
	})
}

// swagger:model StageStatusRequest
type StageStatusRequest struct {
	StudentID    uint   `json:"studentId" binding:"required"`
	AssignmentID string `json:"assignmentId" binding:"required"`
	Status       string `json:"status" binding:"required"`
}

// StageStatus godoc
// @Summary Stage a homework status edit (admin)
// @Description Records a pending override; nothing is written until commit
// @Tags tracker
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StageStatusRequest true "status edit"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/tracker/status [put]
func (c *TrackerController) StageStatus(ctx *gin.Context) {
	var req StageStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	key := service.StatusKey{StudentID: req.StudentID, AssignmentID: req.AssignmentID}
	if err := c.TrackerService.Stage(user.UserID, key, req.Status); err != nil {
		switch {
		case errors.Is(err, util.ErrUnknownStatus):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrCommitInFlight):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"pending": c.TrackerService.PendingCount(user.UserID)})
}

// DiscardSession godoc
// @Summary Discard pending homework status edits (admin)
// @Tags tracker
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/tracker/session [delete]
func (c *TrackerController) DiscardSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	c.TrackerService.Discard(user.UserID)
	util.Success(ctx, gin.H{"pending": 0})
}

// swagger:model CommitRequest
type CommitRequest struct {
	CourseID string `json:"courseId"`
}

// Commit godoc
// @Summary Commit pending homework status edits (admin)
// @Description One atomic batch covering exactly the staged entries. On failure the edits are kept for a retriggered commit.
// @Tags tracker
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CommitRequest false "commit options"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "commit already in flight"
// @Failure 422 {object} util.Response "nothing staged"
// @Router /api/admin/tracker/commit [post]
func (c *TrackerController) Commit(ctx *gin.Context) {
	var req CommitRequest
	ctx.ShouldBindJSON(&req)

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	written, err := c.TrackerService.Commit(ctx.Request.Context(), user.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCommitInFlight):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrEmptyOverlay):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"written": written})
}

// ExportReport godoc
// @Summary Export the homework report document (admin)
// @Description Renders the filtered roster for one assignment to a named PDF artifact
// @Tags tracker
// @Produce json
// @Security ApiKeyAuth
// @Param assignment query string true "assignment id"
// @Param course query string false "course id or all"
// @Param school query string false "school or all"
// @Param q query string false "name or student number substring"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response "document renderer failed"
// @Router /api/admin/tracker/report [get]
func (c *TrackerController) ExportReport(ctx *gin.Context) {
	assignmentID := ctx.Query("assignment")
	if assignmentID == "" {
		util.BadRequest(ctx, "assignment parameter is required")
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	filter, order := rosterQuery(ctx)
	rows, assignment, err := c.TrackerService.View(time.Now(), user.UserID, assignmentID, filter, order)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	header := service.ReportHeader{
		AssignmentTitle: assignment.Title,
		DueAt:           assignment.DueAt,
		SchoolFilter:    filter.School,
	}
	reportRows := make([]service.ReportRow, 0, len(rows))
	for _, row := range rows {
		reportRows = append(reportRows, service.ReportRow{
			StudentNumber: row.StudentNumber,
			Name:          row.Name,
			School:        row.School,
			Status:        row.Status,
		})
	}

	name, url, err := c.ReportService.Generate(ctx.Request.Context(), header, reportRows)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "report generation failed: "+err.Error())
		return
	}

	util.Success(ctx, gin.H{"name": name, "url": url})
}

// GetMyHomework godoc
// @Summary Current student's homework statuses
// @Description Effective status per catalog assignment at request time
// @Tags tracker
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.StudentStatus}
// @Router /api/me/homework [get]
func (c *TrackerController) GetMyHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	statuses, err := c.TrackerService.StudentStatuses(time.Now(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}
