package model

// EvaluationKind tags a scored activity as assessment, exam or assignment.
// The three variants share one question bank; only the assignment variant
// skips change-history tracking.
type EvaluationKind string

const (
	KindAssessment EvaluationKind = "assessment"
	KindExam       EvaluationKind = "exam"
	KindAssignment EvaluationKind = "assignment"
)

// TracksHistory reports whether question changes under this kind are audited.
func (k EvaluationKind) TracksHistory() bool {
	return k != KindAssignment
}

type EvaluationStatus string

const (
	EvaluationDraft     EvaluationStatus = "draft"
	EvaluationPublished EvaluationStatus = "published"
	EvaluationArchived  EvaluationStatus = "archived"
)

// EvaluationItem is the parent scored activity that owns an ordered
// collection of questions. It may be scoped to a course, to a lesson,
// or to neither.
// swagger:model EvaluationItem
type EvaluationItem struct {
	BaseModel
	Kind         EvaluationKind   `gorm:"size:20;not null;default:'assessment';index" json:"kind"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	PassingScore float64          `gorm:"type:decimal(6,2);default:0" json:"passingScore"`
	TimeLimit    int              `gorm:"default:0" json:"timeLimit"` // Minutes
	MaxAttempts  int              `gorm:"default:0" json:"maxAttempts"`
	Status       EvaluationStatus `gorm:"size:20;default:'draft'" json:"status"`
	CourseID     *uint            `gorm:"index;type:bigint unsigned" json:"courseId,omitempty"`
	LessonID     *uint            `gorm:"index;type:bigint unsigned" json:"lessonId,omitempty"`
}

func (EvaluationItem) TableName() string {
	return "evaluation_items"
}
