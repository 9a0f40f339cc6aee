package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/mobydock/internal/domain/entities"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

func setupMockDB(t *testing.T) (*FeedbackAdapter, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := NewFeedbackAdapter(postgres.NewClientFromDB(db)).(*FeedbackAdapter)
	return adapter, mock
}

func TestFeedbackAdapter_Random(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "message" FROM "feedback" ORDER BY RANDOM() ASC LIMIT 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message"}).AddRow(2, "Thanks for the meal buddy."))

	feedback, err := adapter.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), feedback.ID)
	assert.Equal(t, "Thanks for the meal buddy.", feedback.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_Random_EmptyTable(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "feedback" ORDER BY RANDOM()`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message"}))

	feedback, err := adapter.Random(context.Background())
	assert.Nil(t, feedback)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_Random_NullMessage(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "feedback" ORDER BY RANDOM()`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message"}).AddRow(7, nil))

	feedback, err := adapter.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), feedback.ID)
	assert.Empty(t, feedback.Message)
}

func TestFeedbackAdapter_Random_QueryError(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "feedback"`)).
		WillReturnError(errors.New(`pq: relation "feedback" does not exist`))

	_, err := adapter.Random(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestFeedbackAdapter_Create(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "feedback" ("message") VALUES ('Thanks good sir. I''m feeling quite healthy!') RETURNING "id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	feedback := &entities.Feedback{Message: "Thanks good sir. I'm feeling quite healthy!"}
	err := adapter.Create(context.Background(), feedback)
	require.NoError(t, err)
	assert.Equal(t, int64(1), feedback.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_Create_Nil(t *testing.T) {
	adapter, _ := setupMockDB(t)

	err := adapter.Create(context.Background(), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestFeedbackAdapter_Create_Error(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "feedback"`)).WillReturnError(sql.ErrConnDone)

	err := adapter.Create(context.Background(), &entities.Feedback{Message: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestFeedbackAdapter_List(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "message" FROM "feedback" ORDER BY "id" ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message"}).
			AddRow(1, "Thanks good sir. I'm feeling quite healthy!").
			AddRow(2, "Thanks for the meal buddy.").
			AddRow(3, "Please stop feeding me. I'm getting huge!"))

	feedback, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, feedback, 3)
	assert.Equal(t, int64(3), feedback[2].ID)
	assert.Equal(t, "Please stop feeding me. I'm getting huge!", feedback[2].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
