package model

const DefaultPassingScore = 70.0

// Exam is a graded set of multiple-choice questions attached to a
// module (one-to-one).
type Exam struct {
	BaseModel
	ModuleID     uint       `gorm:"uniqueIndex;not null" json:"moduleId"`
	PassingScore float64    `gorm:"default:70" json:"passingScore"`
	Questions    []Question `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// Question has four fixed options; CorrectOption is one of "A".."D".
type Question struct {
	BaseModel
	ExamID        uint   `gorm:"index;not null" json:"examId"`
	Text          string `gorm:"type:text;not null" json:"text"`
	OptionA       string `gorm:"size:200;not null" json:"optionA"`
	OptionB       string `gorm:"size:200;not null" json:"optionB"`
	OptionC       string `gorm:"size:200;not null" json:"optionC"`
	OptionD       string `gorm:"size:200;not null" json:"optionD"`
	CorrectOption string `gorm:"size:1;not null" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// ValidOption reports whether s is one of the four option letters.
func ValidOption(s string) bool {
	switch s {
	case "A", "B", "C", "D":
		return true
	}
	return false
}
