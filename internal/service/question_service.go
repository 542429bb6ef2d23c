package service

import (
	"context"
	"encoding/json"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService owns the question bank of an evaluation item: ordered
// CRUD, the draft/published lifecycle and the append-only audit trail.
// History is recorded only when an acting user is known and the owning
// evaluation kind is audited.
type QuestionService struct {
	Questions   *repository.QuestionRepository
	History     *repository.QuestionHistoryRepository
	Evaluations *repository.EvaluationRepository
	Cache       *redis.Client
}

func NewQuestionService(
	questions *repository.QuestionRepository,
	history *repository.QuestionHistoryRepository,
	evaluations *repository.EvaluationRepository,
	cache *redis.Client,
) *QuestionService {
	return &QuestionService{
		Questions:   questions,
		History:     history,
		Evaluations: evaluations,
		Cache:       cache,
	}
}

type QuestionCreateRequest struct {
	QuestionText  string   `json:"questionText" binding:"required"`
	QuestionType  string   `json:"questionType"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        *float64 `json:"points"`
	OrderIndex    *int     `json:"orderIndex"`
	Explanation   string   `json:"explanation"`
	Status        string   `json:"status"`
}

type QuestionUpdateRequest struct {
	QuestionText  *string   `json:"questionText"`
	QuestionType  *string   `json:"questionType"`
	Options       *[]string `json:"options"`
	CorrectAnswer *string   `json:"correctAnswer"`
	Points        *float64  `json:"points"`
	OrderIndex    *int      `json:"orderIndex"`
	Explanation   *string   `json:"explanation"`
	Status        *string   `json:"status"`
}

type ReorderItem struct {
	ID         uint `json:"id" binding:"required"`
	OrderIndex int  `json:"orderIndex"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,dive"`
}

// CreateQuestion inserts a question with draft status and, when no order is
// supplied, the next order index within the owning evaluation. The insert
// returns the generated id; nothing is re-selected by text.
func (s *QuestionService) CreateQuestion(evaluationID uint, req QuestionCreateRequest, actorID *uint) (*model.EvaluationQuestion, error) {
	q := &model.EvaluationQuestion{
		EvaluationID:  evaluationID,
		QuestionText:  req.QuestionText,
		QuestionType:  model.MultipleChoice,
		RawOptions:    model.EncodeOptions(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Points:        1.0,
		Explanation:   req.Explanation,
		Status:        model.QuestionDraft,
	}
	if req.QuestionType != "" {
		q.QuestionType = model.QuestionType(req.QuestionType)
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.Status != "" {
		q.Status = model.QuestionStatus(req.Status)
	}

	var err error
	if req.OrderIndex != nil {
		q.OrderIndex = *req.OrderIndex
		err = s.Questions.Create(q)
	} else {
		err = s.Questions.CreateWithNextOrder(q)
	}
	if err != nil {
		return nil, err
	}

	if actorID != nil && s.tracksHistory(evaluationID) {
		entry := &model.QuestionHistory{
			QuestionID: q.ID,
			ChangedBy:  actorID,
			ChangeType: model.ChangeCreated,
			NewData: marshalSnapshot(map[string]interface{}{
				"question_text": q.QuestionText,
				"question_type": q.QuestionType,
				"status":        q.Status,
			}),
			ChangeSummary: "question created",
		}
		if err := s.History.Append(entry); err != nil {
			return nil, err
		}
	}

	s.invalidateDetail(evaluationID)
	return s.Questions.FindByID(q.ID)
}

func (s *QuestionService) GetQuestion(id uint) (*model.EvaluationQuestion, error) {
	return s.Questions.FindByID(id)
}

func (s *QuestionService) ListQuestions(evaluationID uint) ([]model.EvaluationQuestion, error) {
	return s.Questions.ListByEvaluation(evaluationID)
}

// trackedFields is the audited subset of question columns, in the order
// change summaries list them.
var trackedFields = []string{"question_text", "question_type", "status", "points"}

// UpdateQuestion applies the allow-listed fields present in the request.
// When any audited field actually changed, one history entry records the
// true before/after snapshots and names the changed fields.
func (s *QuestionService) UpdateQuestion(id uint, req QuestionUpdateRequest, actorID *uint) (*model.EvaluationQuestion, error) {
	old, err := s.Questions.FindByID(id)
	if err != nil || old == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.QuestionText != nil {
		updates["question_text"] = *req.QuestionText
	}
	if req.QuestionType != nil {
		updates["question_type"] = *req.QuestionType
	}
	if req.Options != nil {
		updates["options"] = model.EncodeOptions(*req.Options)
	}
	if req.CorrectAnswer != nil {
		updates["correct_answer"] = *req.CorrectAnswer
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.Explanation != nil {
		updates["explanation"] = *req.Explanation
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return old, nil
	}

	if err := s.Questions.UpdateFields(id, updates); err != nil {
		return nil, err
	}

	updated, err := s.Questions.FindByID(id)
	if err != nil || updated == nil {
		return updated, err
	}

	changed := diffTracked(old, updated)
	if actorID != nil && len(changed) > 0 && s.tracksHistory(old.EvaluationID) {
		entry := &model.QuestionHistory{
			QuestionID:    id,
			ChangedBy:     actorID,
			ChangeType:    model.ChangeUpdated,
			OldData:       marshalSnapshot(trackedSnapshot(old)),
			NewData:       marshalSnapshot(trackedSnapshot(updated)),
			ChangeSummary: strings.Join(changed, ", "),
		}
		if err := s.History.Append(entry); err != nil {
			return nil, err
		}
	}

	s.invalidateDetail(old.EvaluationID)
	return updated, nil
}

// Publish flips the question to published regardless of its current status.
// The audit entry always labels the prior status as draft: the trail mirrors
// the transition the caller asked for, not the state it found. Repeated
// publishes therefore log draft→published every time.
func (s *QuestionService) Publish(id uint, actorID *uint) (*model.EvaluationQuestion, error) {
	return s.setStatus(id, actorID, model.ChangePublished, model.QuestionDraft, model.QuestionPublished)
}

// Unpublish mirrors Publish back to draft, with the fixed published→draft
// labels.
func (s *QuestionService) Unpublish(id uint, actorID *uint) (*model.EvaluationQuestion, error) {
	return s.setStatus(id, actorID, model.ChangeUnpublished, model.QuestionPublished, model.QuestionDraft)
}

func (s *QuestionService) setStatus(id uint, actorID *uint, change model.ChangeType, from, to model.QuestionStatus) (*model.EvaluationQuestion, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil || q == nil {
		return nil, err
	}

	if err := s.Questions.UpdateFields(id, map[string]interface{}{"status": to}); err != nil {
		return nil, err
	}

	if actorID != nil && s.tracksHistory(q.EvaluationID) {
		entry := &model.QuestionHistory{
			QuestionID:    id,
			ChangedBy:     actorID,
			ChangeType:    change,
			OldData:       marshalSnapshot(map[string]interface{}{"status": from}),
			NewData:       marshalSnapshot(map[string]interface{}{"status": to}),
			ChangeSummary: "question " + string(change),
		}
		if err := s.History.Append(entry); err != nil {
			return nil, err
		}
	}

	s.invalidateDetail(q.EvaluationID)
	return s.Questions.FindByID(id)
}

// Reorder issues one scoped update per item concurrently, with no enclosing
// transaction: a failure partway leaves the bank partially reordered, and
// ids belonging to another parent match zero rows and are skipped silently.
// Returns the freshly re-read ordered bank.
func (s *QuestionService) Reorder(evaluationID uint, items []ReorderItem) ([]model.EvaluationQuestion, error) {
	g := new(errgroup.Group)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return s.Questions.UpdateOrderScoped(evaluationID, item.ID, item.OrderIndex)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.invalidateDetail(evaluationID)
	return s.Questions.ListByEvaluation(evaluationID)
}

// DeleteQuestion removes the row permanently. The audit trail is kept as an
// orphaned record of the question's lifetime.
func (s *QuestionService) DeleteQuestion(id uint) error {
	q, err := s.Questions.FindByID(id)
	if err != nil || q == nil {
		return err
	}
	if err := s.Questions.Delete(id); err != nil {
		return err
	}
	s.invalidateDetail(q.EvaluationID)
	return nil
}

func (s *QuestionService) GetHistory(questionID uint) ([]repository.HistoryEntry, error) {
	return s.History.ListByQuestion(questionID)
}

// tracksHistory resolves the owning evaluation's kind. A missing parent
// defaults to audited: orphaned questions keep the assessment behavior.
func (s *QuestionService) tracksHistory(evaluationID uint) bool {
	item, err := s.Evaluations.FindByID(evaluationID)
	if err != nil {
		logger.Log.Warn("could not resolve evaluation kind for history tracking",
			zap.Uint("evaluation_id", evaluationID),
			zap.Error(err))
		return true
	}
	if item == nil {
		return true
	}
	return item.Kind.TracksHistory()
}

func (s *QuestionService) invalidateDetail(evaluationID uint) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), evaluationDetailKey(evaluationID)).Err(); err != nil {
		logger.Log.Warn("evaluation detail cache invalidation failed",
			zap.Uint("evaluation_id", evaluationID),
			zap.Error(err))
	}
}

func trackedSnapshot(q *model.EvaluationQuestion) map[string]interface{} {
	return map[string]interface{}{
		"question_text": q.QuestionText,
		"question_type": q.QuestionType,
		"status":        q.Status,
		"points":        q.Points,
	}
}

func diffTracked(old, updated *model.EvaluationQuestion) []string {
	var changed []string
	for _, field := range trackedFields {
		switch field {
		case "question_text":
			if old.QuestionText != updated.QuestionText {
				changed = append(changed, field)
			}
		case "question_type":
			if old.QuestionType != updated.QuestionType {
				changed = append(changed, field)
			}
		case "status":
			if old.Status != updated.Status {
				changed = append(changed, field)
			}
		case "points":
			if old.Points != updated.Points {
				changed = append(changed, field)
			}
		}
	}
	return changed
}

func marshalSnapshot(fields map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return data
}
