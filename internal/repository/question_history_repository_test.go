package repository

import (
	"encoding/json"
	"testing"
	"time"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestListByQuestionNewestFirstWithActor(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionHistoryRepository(db)
	actor := seedUser(t, db, "Dana Reyes", "dana@example.com")

	old := json.RawMessage(`{"status":"draft"}`)
	newer := json.RawMessage(`{"status":"published"}`)

	first := &model.QuestionHistory{
		QuestionID:    11,
		ChangedBy:     &actor.ID,
		ChangeType:    model.ChangeCreated,
		NewData:       old,
		ChangeSummary: "question created",
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	second := &model.QuestionHistory{
		QuestionID:    11,
		ChangedBy:     &actor.ID,
		ChangeType:    model.ChangePublished,
		OldData:       old,
		NewData:       newer,
		ChangeSummary: "question published",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))

	// A row for another question must not leak into the trail.
	require.NoError(t, repo.Append(&model.QuestionHistory{
		QuestionID: 12,
		ChangeType: model.ChangeCreated,
	}))

	entries, err := repo.ListByQuestion(11)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, model.ChangePublished, entries[0].ChangeType)
	assert.Equal(t, model.ChangeCreated, entries[1].ChangeType)

	require.NotNil(t, entries[0].ActorName)
	assert.Equal(t, "Dana Reyes", *entries[0].ActorName)
	require.NotNil(t, entries[0].ActorEmail)
	assert.Equal(t, "dana@example.com", *entries[0].ActorEmail)
}

func TestListByQuestionDanglingActorIsNull(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionHistoryRepository(db)

	ghost := uint(424242)
	require.NoError(t, repo.Append(&model.QuestionHistory{
		QuestionID:    7,
		ChangedBy:     &ghost,
		ChangeType:    model.ChangeUpdated,
		ChangeSummary: "points",
	}))

	entries, err := repo.ListByQuestion(7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ActorName)
	assert.Nil(t, entries[0].ActorEmail)
}

func TestListByQuestionSoftDeletedActorIsNull(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionHistoryRepository(db)
	actor := seedUser(t, db, "Gone Soon", "gone@example.com")

	require.NoError(t, repo.Append(&model.QuestionHistory{
		QuestionID: 9,
		ChangedBy:  &actor.ID,
		ChangeType: model.ChangeUpdated,
	}))

	require.NoError(t, db.Delete(&model.User{}, actor.ID).Error)

	entries, err := repo.ListByQuestion(9)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, &actor.ID, entries[0].ChangedBy)
	assert.Nil(t, entries[0].ActorName)
	assert.Nil(t, entries[0].ActorEmail)
}

func TestCountByQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionHistoryRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(&model.QuestionHistory{
			QuestionID: 5,
			ChangeType: model.ChangeUpdated,
		}))
	}

	count, err := repo.CountByQuestion(5)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
