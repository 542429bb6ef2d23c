package repository

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. A single
// connection keeps the database alive and serializes concurrent writers.
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

func seedEvaluation(t *testing.T, db *gorm.DB, kind model.EvaluationKind) *model.EvaluationItem {
	t.Helper()
	item := &model.EvaluationItem{Kind: kind, Title: "Unit test evaluation"}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestCreateWithNextOrderAssignsSequentialIndexes(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)
	other := seedEvaluation(t, db, model.KindAssessment)

	for i, text := range []string{"first", "second", "third"} {
		q := &model.EvaluationQuestion{EvaluationID: eval.ID, QuestionText: text}
		require.NoError(t, repo.CreateWithNextOrder(q))
		assert.Equal(t, i+1, q.OrderIndex)
		assert.NotZero(t, q.ID, "insert should populate the generated id")
	}

	// Ordering is scoped per evaluation, so a sibling bank restarts at 1.
	q := &model.EvaluationQuestion{EvaluationID: other.ID, QuestionText: "elsewhere"}
	require.NoError(t, repo.CreateWithNextOrder(q))
	assert.Equal(t, 1, q.OrderIndex)
}

func TestListByEvaluationReturnsDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindExam)

	for _, spec := range []struct {
		text  string
		order int
	}{
		{"shown last", 30},
		{"shown first", 10},
		{"shown second", 20},
	} {
		require.NoError(t, repo.Create(&model.EvaluationQuestion{
			EvaluationID: eval.ID,
			QuestionText: spec.text,
			OrderIndex:   spec.order,
		}))
	}

	qs, err := repo.ListByEvaluation(eval.ID)
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "shown first", qs[0].QuestionText)
	assert.Equal(t, "shown second", qs[1].QuestionText)
	assert.Equal(t, "shown last", qs[2].QuestionText)
}

func TestListByEvaluationTieBreaksDuplicateOrderOnCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)

	// Reorder can leave two questions sharing an order_index; the older
	// row must list first.
	older := &model.EvaluationQuestion{EvaluationID: eval.ID, QuestionText: "older", OrderIndex: 5}
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := &model.EvaluationQuestion{EvaluationID: eval.ID, QuestionText: "newer", OrderIndex: 5}
	newer.CreatedAt = time.Now()

	// Insert the newer row first so insertion order cannot mask the tie-break.
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(older))

	qs, err := repo.ListByEvaluation(eval.ID)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "older", qs[0].QuestionText)
	assert.Equal(t, "newer", qs[1].QuestionText)
}

func TestFindByIDMissingReturnsNilNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	q, err := repo.FindByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestOptionsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)

	q := &model.EvaluationQuestion{
		EvaluationID: eval.ID,
		QuestionText: "pick one",
		RawOptions:   model.EncodeOptions([]string{"alpha", "beta", "gamma"}),
	}
	require.NoError(t, repo.CreateWithNextOrder(q))

	loaded, err := repo.FindByID(q.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, loaded.Options)
}

func TestCorruptOptionsDegradeToEmptyList(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)

	q := &model.EvaluationQuestion{
		EvaluationID: eval.ID,
		QuestionText: "damaged row",
		RawOptions:   "{not valid json",
	}
	require.NoError(t, repo.Create(q))

	loaded, err := repo.FindByID(q.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{}, loaded.Options)
}

func TestUpdateOrderScopedIgnoresForeignQuestions(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)
	other := seedEvaluation(t, db, model.KindAssessment)

	mine := &model.EvaluationQuestion{EvaluationID: eval.ID, QuestionText: "mine", OrderIndex: 1}
	theirs := &model.EvaluationQuestion{EvaluationID: other.ID, QuestionText: "theirs", OrderIndex: 1}
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(theirs))

	// Moving a question that belongs to another evaluation is a no-op,
	// not an error.
	require.NoError(t, repo.UpdateOrderScoped(eval.ID, theirs.ID, 42))

	unchanged, err := repo.FindByID(theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.OrderIndex)

	require.NoError(t, repo.UpdateOrderScoped(eval.ID, mine.ID, 7))
	moved, err := repo.FindByID(mine.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, moved.OrderIndex)
}

func TestDeleteIsPermanent(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)

	q := &model.EvaluationQuestion{EvaluationID: eval.ID, QuestionText: "doomed"}
	require.NoError(t, repo.CreateWithNextOrder(q))
	require.NoError(t, repo.Delete(q.ID))

	found, err := repo.FindByID(q.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	// Not a soft delete: the row must be gone even when looking past
	// the deleted_at filter.
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.EvaluationQuestion{}).
		Where("id = ?", q.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCountByEvaluation(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	eval := seedEvaluation(t, db, model.KindAssessment)

	count, err := repo.CountByEvaluation(eval.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.CreateWithNextOrder(&model.EvaluationQuestion{
			EvaluationID: eval.ID,
			QuestionText: "q",
		}))
	}

	count, err = repo.CountByEvaluation(eval.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}
