package service

import (
	"encoding/json"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. A single
// connection keeps the database alive and serializes concurrent writers,
// which matters for the reorder fan-out.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type questionFixture struct {
	db      *gorm.DB
	svc     *QuestionService
	history *repository.QuestionHistoryRepository
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	db := newTestDB(t)
	questions := repository.NewQuestionRepository(db)
	history := repository.NewQuestionHistoryRepository(db)
	evaluations := repository.NewEvaluationRepository(db)
	return &questionFixture{
		db:      db,
		svc:     NewQuestionService(questions, history, evaluations, nil),
		history: history,
	}
}

func (f *questionFixture) seedEvaluation(t *testing.T, kind model.EvaluationKind) *model.EvaluationItem {
	t.Helper()
	item := &model.EvaluationItem{Kind: kind, Title: "Fixture evaluation"}
	require.NoError(t, f.db.Create(item).Error)
	return item
}

func statusSnapshot(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var snap map[string]string
	require.NoError(t, json.Unmarshal(raw, &snap))
	return snap["status"]
}

func TestCreateQuestionDefaults(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(1)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{
		QuestionText: "What is two plus two?",
		Options:      []string{"3", "4"},
	}, &actor)
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.NotZero(t, q.ID)
	assert.Equal(t, model.MultipleChoice, q.QuestionType)
	assert.Equal(t, model.QuestionDraft, q.Status)
	assert.Equal(t, 1.0, q.Points)
	assert.Equal(t, 1, q.OrderIndex)
	assert.Equal(t, []string{"3", "4"}, q.Options)

	entries, err := f.history.ListByQuestion(q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ChangeCreated, entries[0].ChangeType)
	assert.Equal(t, "question created", entries[0].ChangeSummary)
}

func TestCreateQuestionSequentialOrder(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)

	for want := 1; want <= 3; want++ {
		q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, q.OrderIndex)
	}

	// An explicit order is honored as-is.
	explicit := 99
	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{
		QuestionText: "pinned",
		OrderIndex:   &explicit,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 99, q.OrderIndex)
}

func TestCreateQuestionWithoutActorSkipsHistory(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "anonymous"}, nil)
	require.NoError(t, err)

	count, err := f.history.CountByQuestion(q.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPublishIsIdempotentWithFixedLabels(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindExam)
	actor := uint(3)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		published, err := f.svc.Publish(q.ID, &actor)
		require.NoError(t, err)
		assert.Equal(t, model.QuestionPublished, published.Status)
	}

	entries, err := f.history.ListByQuestion(q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The trail records the requested transition, not the found state:
	// the second publish still reads draft -> published.
	for _, entry := range entries {
		assert.Equal(t, model.ChangePublished, entry.ChangeType)
		assert.Equal(t, "draft", statusSnapshot(t, entry.OldData))
		assert.Equal(t, "published", statusSnapshot(t, entry.NewData))
	}
}

func TestUnpublishUsesFixedLabels(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(3)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, nil)
	require.NoError(t, err)

	// Unpublishing a draft still logs published -> draft.
	reverted, err := f.svc.Unpublish(q.ID, &actor)
	require.NoError(t, err)
	assert.Equal(t, model.QuestionDraft, reverted.Status)

	entries, err := f.history.ListByQuestion(q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ChangeUnpublished, entries[0].ChangeType)
	assert.Equal(t, "published", statusSnapshot(t, entries[0].OldData))
	assert.Equal(t, "draft", statusSnapshot(t, entries[0].NewData))
}

func TestPublishMissingQuestionReturnsNil(t *testing.T) {
	f := newQuestionFixture(t)
	actor := uint(3)

	q, err := f.svc.Publish(12345, &actor)
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestUpdateUntrackedFieldLeavesNoHistory(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(2)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, nil)
	require.NoError(t, err)

	explanation := "because the axioms say so"
	updated, err := f.svc.UpdateQuestion(q.ID, QuestionUpdateRequest{Explanation: &explanation}, &actor)
	require.NoError(t, err)
	assert.Equal(t, explanation, updated.Explanation)

	count, err := f.history.CountByQuestion(q.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateTrackedFieldsRecordsTrueDiff(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(2)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "original"}, nil)
	require.NoError(t, err)

	text := "revised"
	points := 2.5
	updated, err := f.svc.UpdateQuestion(q.ID, QuestionUpdateRequest{
		QuestionText: &text,
		Points:       &points,
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.QuestionText)
	assert.Equal(t, 2.5, updated.Points)

	entries, err := f.history.ListByQuestion(q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ChangeUpdated, entries[0].ChangeType)
	assert.Equal(t, "question_text, points", entries[0].ChangeSummary)

	var oldSnap, newSnap map[string]interface{}
	require.NoError(t, json.Unmarshal(entries[0].OldData, &oldSnap))
	require.NoError(t, json.Unmarshal(entries[0].NewData, &newSnap))
	assert.Equal(t, "original", oldSnap["question_text"])
	assert.Equal(t, "revised", newSnap["question_text"])
	assert.Equal(t, 1.0, oldSnap["points"])
	assert.Equal(t, 2.5, newSnap["points"])
}

func TestUpdateStatusRecordsActualTransition(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(2)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, nil)
	require.NoError(t, err)

	status := string(model.QuestionPublished)
	_, err = f.svc.UpdateQuestion(q.ID, QuestionUpdateRequest{Status: &status}, &actor)
	require.NoError(t, err)

	// Unlike Publish, a status change through update snapshots what was
	// really there before and after.
	entries, err := f.history.ListByQuestion(q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "status", entries[0].ChangeSummary)
	assert.Equal(t, "draft", statusSnapshot(t, entries[0].OldData))
	assert.Equal(t, "published", statusSnapshot(t, entries[0].NewData))
}

func TestReorderSwapsAndSkipsForeignIDs(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	other := f.seedEvaluation(t, model.KindAssessment)

	q1, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "first"}, nil)
	require.NoError(t, err)
	q2, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "second"}, nil)
	require.NoError(t, err)
	foreign, err := f.svc.CreateQuestion(other.ID, QuestionCreateRequest{QuestionText: "foreign"}, nil)
	require.NoError(t, err)

	ordered, err := f.svc.Reorder(eval.ID, []ReorderItem{
		{ID: q1.ID, OrderIndex: 2},
		{ID: q2.ID, OrderIndex: 1},
		{ID: foreign.ID, OrderIndex: 5},
		{ID: 99999, OrderIndex: 9},
	})
	require.NoError(t, err)

	require.Len(t, ordered, 2)
	assert.Equal(t, q2.ID, ordered[0].ID)
	assert.Equal(t, q1.ID, ordered[1].ID)

	// The foreign question keeps its own bank's ordering.
	untouched, err := f.svc.GetQuestion(foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, untouched.OrderIndex)
}

func TestDeleteQuestionKeepsOrphanedHistory(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssessment)
	actor := uint(4)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "q"}, &actor)
	require.NoError(t, err)
	_, err = f.svc.Publish(q.ID, &actor)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteQuestion(q.ID))

	gone, err := f.svc.GetQuestion(q.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// The audit trail outlives the question.
	count, err := f.history.CountByQuestion(q.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	entries, err := f.svc.GetHistory(q.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAssignmentKindSkipsHistory(t *testing.T) {
	f := newQuestionFixture(t)
	eval := f.seedEvaluation(t, model.KindAssignment)
	actor := uint(5)

	q, err := f.svc.CreateQuestion(eval.ID, QuestionCreateRequest{QuestionText: "homework"}, &actor)
	require.NoError(t, err)
	_, err = f.svc.Publish(q.ID, &actor)
	require.NoError(t, err)

	text := "revised homework"
	_, err = f.svc.UpdateQuestion(q.ID, QuestionUpdateRequest{QuestionText: &text}, &actor)
	require.NoError(t, err)

	count, err := f.history.CountByQuestion(q.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMissingParentDefaultsToAudited(t *testing.T) {
	f := newQuestionFixture(t)
	actor := uint(6)

	// No evaluation row exists for this parent id.
	q, err := f.svc.CreateQuestion(31337, QuestionCreateRequest{QuestionText: "orphan"}, &actor)
	require.NoError(t, err)

	count, err := f.history.CountByQuestion(q.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
