package model

// Course is the root of the content tree. Only active courses are
// visible to learners; inactive ones are hidden from every
// learner-facing read and write.
type Course struct {
	BaseModel
	Title       string   `gorm:"size:100;not null;index" json:"title"`
	Slug        string   `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	IsActive    bool     `gorm:"default:false;index" json:"isActive"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Module owns an ordered list of lessons and at most one exam.
type Module struct {
	BaseModel
	CourseID uint     `gorm:"index;not null" json:"courseId"`
	Title    string   `gorm:"size:100;not null" json:"title"`
	Order    int      `gorm:"not null;index" json:"order"`
	Lessons  []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
	Exam     *Exam    `gorm:"foreignKey:ModuleID" json:"exam,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// HasExam reports whether the module carries an exam. Exam must have
// been preloaded; the association is an explicit optional reference,
// not a runtime existence probe.
func (m *Module) HasExam() bool {
	return m.Exam != nil
}

type Lesson struct {
	BaseModel
	ModuleID uint   `gorm:"index;not null" json:"moduleId"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Order    int    `gorm:"not null;index" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
