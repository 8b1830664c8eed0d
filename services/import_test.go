package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func expectRunInsert(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "import_runs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectCommit()
}

// The run row is written before any pipeline step, so callers can hand out
// the run id while the import itself is still in flight.
func TestStartImportCreatesRunRowFirst(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(&config.Config{ImportBatchLimit: 500}, db, zap.NewNop(), nil)

	expectRunInsert(mock, 42)

	run, dois, err := svc.StartImport(context.Background(), []string{" 10.1/a ", "10.1/b", "10.1/a"}, models.RunSourceAPI)
	require.NoError(t, err)

	assert.Equal(t, uint(42), run.ID)
	assert.Equal(t, models.RunStatusRunning, run.Status)
	assert.Equal(t, models.RunSourceAPI, run.Source)
	assert.Equal(t, 2, run.Requested)
	assert.Equal(t, []string{"10.1/a", "10.1/b"}, dois)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartImportCapsBatchAtConfiguredLimit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(&config.Config{ImportBatchLimit: 2}, db, zap.NewNop(), nil)

	expectRunInsert(mock, 7)

	run, dois, err := svc.StartImport(context.Background(), []string{"10.1/a", "10.1/b", "10.1/c"}, models.RunSourceCron)
	require.NoError(t, err)

	assert.Equal(t, 2, run.Requested)
	assert.Equal(t, []string{"10.1/a", "10.1/b"}, dois)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDedupeDOIs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"keeps order", []string{"10.1/b", "10.1/a"}, []string{"10.1/b", "10.1/a"}},
		{"drops repeats", []string{"10.1/a", "10.1/a", "10.1/b"}, []string{"10.1/a", "10.1/b"}},
		{"trims and drops empties", []string{" 10.1/a ", "", "  "}, []string{"10.1/a"}},
		{"repeat after trim", []string{"10.1/a", " 10.1/a"}, []string{"10.1/a"}},
		{"nil input", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dedupeDOIs(tc.in))
		})
	}
}
