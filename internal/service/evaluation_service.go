package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const evaluationDetailTTL = time.Minute

func evaluationDetailKey(id uint) string {
	return fmt.Sprintf("evaluation:detail:%d", id)
}

// EvaluationService manages evaluation items and assembles the detail view:
// the item, its ordered question bank and the derived counts.
type EvaluationService struct {
	Evaluations *repository.EvaluationRepository
	Questions   *repository.QuestionRepository
	Attempts    *repository.AttemptRepository
	Courses     *repository.CourseRepository
	Cache       *redis.Client
}

func NewEvaluationService(
	evaluations *repository.EvaluationRepository,
	questions *repository.QuestionRepository,
	attempts *repository.AttemptRepository,
	courses *repository.CourseRepository,
	cache *redis.Client,
) *EvaluationService {
	return &EvaluationService{
		Evaluations: evaluations,
		Questions:   questions,
		Attempts:    attempts,
		Courses:     courses,
		Cache:       cache,
	}
}

type EvaluationRequest struct {
	Kind         string   `json:"kind"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	PassingScore *float64 `json:"passingScore"`
	TimeLimit    int      `json:"timeLimit"`
	MaxAttempts  int      `json:"maxAttempts"`
	CourseID     *uint    `json:"courseId"`
	LessonID     *uint    `json:"lessonId"`
}

// EvaluationDetail is the item plus its ordered bank and derived counts.
type EvaluationDetail struct {
	model.EvaluationItem
	Questions     []model.EvaluationQuestion `json:"questions"`
	QuestionCount int64                      `json:"questionCount"`
	AttemptCount  int64                      `json:"attemptCount"`
}

func (s *EvaluationService) Create(req EvaluationRequest) (*model.EvaluationItem, error) {
	if req.CourseID != nil && req.LessonID != nil {
		return nil, util.ErrScopeConflict
	}
	if err := s.resolveScope(req.CourseID, req.LessonID); err != nil {
		return nil, err
	}

	item := &model.EvaluationItem{
		Kind:        model.KindAssessment,
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		MaxAttempts: req.MaxAttempts,
		Status:      model.EvaluationDraft,
		CourseID:    req.CourseID,
		LessonID:    req.LessonID,
	}
	if req.Kind != "" {
		item.Kind = model.EvaluationKind(req.Kind)
	}
	if req.PassingScore != nil {
		item.PassingScore = *req.PassingScore
	}

	if err := s.Evaluations.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *EvaluationService) List(kind string, page, limit int) ([]model.EvaluationItem, int64, error) {
	return s.Evaluations.List(model.EvaluationKind(kind), page, limit)
}

func (s *EvaluationService) Get(id uint) (*model.EvaluationItem, error) {
	return s.Evaluations.FindByID(id)
}

// GetDetail returns the evaluation with its ordered questions and counts.
// The assembled view is cached briefly; question bank writes invalidate it.
func (s *EvaluationService) GetDetail(id uint) (*EvaluationDetail, error) {
	if cached := s.readCachedDetail(id); cached != nil {
		return cached, nil
	}

	item, err := s.Evaluations.FindByID(id)
	if err != nil || item == nil {
		return nil, err
	}

	questions, err := s.Questions.ListByEvaluation(id)
	if err != nil {
		return nil, err
	}

	questionCount, err := s.Questions.CountByEvaluation(id)
	if err != nil {
		return nil, err
	}

	attemptCount, err := s.Attempts.CountByEvaluation(id)
	if err != nil {
		return nil, err
	}

	detail := &EvaluationDetail{
		EvaluationItem: *item,
		Questions:      questions,
		QuestionCount:  questionCount,
		AttemptCount:   attemptCount,
	}

	s.writeCachedDetail(id, detail)
	return detail, nil
}

// ListQuestions exposes the ordered bank for the detail view.
func (s *EvaluationService) ListQuestions(id uint) ([]model.EvaluationQuestion, error) {
	return s.Questions.ListByEvaluation(id)
}

func (s *EvaluationService) Update(id uint, req EvaluationRequest) (*model.EvaluationItem, error) {
	if req.CourseID != nil && req.LessonID != nil {
		return nil, util.ErrScopeConflict
	}
	if err := s.resolveScope(req.CourseID, req.LessonID); err != nil {
		return nil, err
	}

	item, err := s.Evaluations.FindByID(id)
	if err != nil || item == nil {
		return nil, err
	}

	item.Title = req.Title
	item.Description = req.Description
	item.TimeLimit = req.TimeLimit
	item.MaxAttempts = req.MaxAttempts
	if req.Kind != "" {
		item.Kind = model.EvaluationKind(req.Kind)
	}
	if req.PassingScore != nil {
		item.PassingScore = *req.PassingScore
	}
	if req.CourseID != nil {
		item.CourseID = req.CourseID
		item.LessonID = nil
	}
	if req.LessonID != nil {
		item.LessonID = req.LessonID
		item.CourseID = nil
	}

	if err := s.Evaluations.Update(item); err != nil {
		return nil, err
	}

	s.invalidate(id)
	return item, nil
}

func (s *EvaluationService) Delete(id uint) error {
	if err := s.Evaluations.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// RecordAttempt registers one user run; only the count feeds back into the
// aggregate view. A positive MaxAttempts on the item caps runs per user.
func (s *EvaluationService) RecordAttempt(evaluationID, userID uint) (*model.EvaluationAttempt, error) {
	item, err := s.Evaluations.FindByID(evaluationID)
	if err != nil || item == nil {
		return nil, err
	}

	if item.MaxAttempts > 0 {
		used, err := s.Attempts.CountByEvaluationAndUser(evaluationID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(item.MaxAttempts) {
			return nil, util.ErrAttemptLimit
		}
	}

	attempt := &model.EvaluationAttempt{
		EvaluationID: evaluationID,
		UserID:       userID,
		Status:       "started",
		StartedAt:    time.Now(),
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	s.invalidate(evaluationID)
	return attempt, nil
}

// resolveScope verifies that a referenced course or lesson actually exists.
func (s *EvaluationService) resolveScope(courseID, lessonID *uint) error {
	if courseID != nil {
		course, err := s.Courses.FindByID(*courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return util.ErrScopeNotFound
		}
	}
	if lessonID != nil {
		lesson, err := s.Courses.FindLessonByID(*lessonID)
		if err != nil {
			return err
		}
		if lesson == nil {
			return util.ErrScopeNotFound
		}
	}
	return nil
}

func (s *EvaluationService) readCachedDetail(id uint) *EvaluationDetail {
	if s.Cache == nil {
		return nil
	}
	payload, err := s.Cache.Get(context.Background(), evaluationDetailKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var detail EvaluationDetail
	if err := json.Unmarshal(payload, &detail); err != nil {
		return nil
	}
	return &detail
}

func (s *EvaluationService) writeCachedDetail(id uint, detail *EvaluationDetail) {
	if s.Cache == nil {
		return
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := s.Cache.Set(context.Background(), evaluationDetailKey(id), payload, evaluationDetailTTL).Err(); err != nil {
		logger.Log.Warn("evaluation detail cache write failed",
			zap.Uint("evaluation_id", id),
			zap.Error(err))
	}
}

func (s *EvaluationService) invalidate(id uint) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(context.Background(), evaluationDetailKey(id))
}
