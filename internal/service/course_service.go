package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type CourseService struct {
	Repo *repository.CourseRepository
}

func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{Repo: repo}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type LessonRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

func (s *CourseService) Create(creatorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
	}
	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(page, limit int) ([]model.Course, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	return s.Repo.FindByID(id)
}

func (s *CourseService) AddLesson(courseID uint, req LessonRequest) (*model.Lesson, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil || course == nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	}
	if err := s.Repo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) ListLessons(courseID uint) ([]model.Lesson, error) {
	return s.Repo.ListLessons(courseID)
}
