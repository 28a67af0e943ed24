package model

// ExamGrade is an admin-entered exam result a student can read back.
// swagger:model ExamGrade
type ExamGrade struct {
	BaseModel
	StudentID uint    `gorm:"uniqueIndex:idx_student_exam;not null" json:"studentId"`
	Exam      string  `gorm:"uniqueIndex:idx_student_exam;size:100;not null" json:"exam"`
	Score     float64 `gorm:"not null" json:"score"`
	MaxScore  float64 `gorm:"not null;default:100" json:"maxScore"`
}

func (ExamGrade) TableName() string {
	return "exam_grades"
}
