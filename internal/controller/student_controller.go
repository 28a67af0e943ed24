package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// swagger:model CreateStudentRequest
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	School   string `json:"school"`
	CourseID string `json:"courseId" binding:"required"`
}

// CreateStudent godoc
// @Summary Enroll a student (admin)
// @Description Creates a student account and assigns the next student number
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateStudentRequest true "student"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/admin/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		School:   req.School,
		CourseID: req.CourseID,
	}

	if err := c.StudentService.CreateStudent(student); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary List students (admin)
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param course query string false "course id or all"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.StudentService.List(ctx.DefaultQuery("course", "all"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// swagger:model UpdateEnrollmentRequest
type UpdateEnrollmentRequest struct {
	CourseID string `json:"courseId"`
	School   string `json:"school"`
}

// UpdateEnrollment godoc
// @Summary Update a student's course or school (admin)
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "student id"
// @Param body body UpdateEnrollmentRequest true "enrollment"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/students/{studentId} [patch]
func (c *StudentController) UpdateEnrollment(ctx *gin.Context) {
	var req UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.UpdateEnrollment(util.MustParseUint(ctx.Param("studentId")), req.CourseID, req.School)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, student)
}
