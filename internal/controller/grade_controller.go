package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// swagger:model RecordGradeRequest
type RecordGradeRequest struct {
	StudentID uint    `json:"studentId" binding:"required"`
	Exam      string  `json:"exam" binding:"required"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"maxScore" binding:"required,gt=0"`
}

// RecordGrade godoc
// @Summary Record an exam grade (admin)
// @Tags grades
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RecordGradeRequest true "grade"
// @Success 201 {object} util.Response{data=model.ExamGrade}
// @Failure 400 {object} util.Response
// @Router /api/admin/grades [post]
func (c *GradeController) RecordGrade(ctx *gin.Context) {
	var req RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade := &model.ExamGrade{
		StudentID: req.StudentID,
		Exam:      req.Exam,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
	}

	if err := c.GradeService.Record(grade); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, grade)
}

// GetMyGrades godoc
// @Summary Current student's exam grades
// @Tags grades
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ExamGrade}
// @Router /api/me/grades [get]
func (c *GradeController) GetMyGrades(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	grades, err := c.GradeService.StudentGrades(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// DeleteGrade godoc
// @Summary Delete an exam grade (admin)
// @Tags grades
// @Produce json
// @Security ApiKeyAuth
// @Param gradeId path int true "grade id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/grades/{gradeId} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	if err := c.GradeService.Delete(util.MustParseUint(ctx.Param("gradeId"))); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
