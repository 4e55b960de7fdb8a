package adapter

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBase(t *testing.T, cfg core.AdapterConfig) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db, Cfg: cfg}, mock
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	base := &BaseSQLAdapter{Cfg: core.AdapterConfig{Table: "users"}}

	assert.False(t, base.IsConnected())
	assert.NoError(t, base.Close())
	assert.ErrorIs(t, base.Exec(ctx, "SELECT 1"), ErrNotConnected)

	rows, err := base.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, rows)

	assert.ErrorIs(t, base.Verify(ctx, "{@}.a = 1", core.KindWhere), ErrNotConnected)
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		errMsg    string
	}{
		{
			name: "exec success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql: "CREATE TABLE users (id INT)",
		},
		{
			name: "exec with error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:    "INVALID SQL",
			errMsg: "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, mock := newMockBase(t, core.AdapterConfig{})
			tt.setupMock(mock)

			err := base.Exec(context.Background(), tt.sql)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBaseSQLAdapter_Verify(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		kind     core.FragmentKind
		alias    string
		want     string
		planErr  error
	}{
		{
			name:     "where",
			rendered: "{@}.age > 21",
			kind:     core.KindWhere,
			want:     "EXPLAIN SELECT 1 FROM users t WHERE t.age > 21",
		},
		{
			name:     "formula with alias",
			rendered: "{@}.price * {@}.qty",
			kind:     core.KindFormula,
			alias:    "u",
			want:     "EXPLAIN SELECT u.price * u.qty FROM users u",
		},
		{
			name:     "order by",
			rendered: "{@}.name desc",
			kind:     core.KindOrderBy,
			want:     "EXPLAIN SELECT 1 FROM users t ORDER BY t.name desc",
		},
		{
			name:     "rejected",
			rendered: "{@}.missing = 1",
			kind:     core.KindWhere,
			want:     "EXPLAIN SELECT 1 FROM users t WHERE t.missing = 1",
			planErr:  assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, mock := newMockBase(t, core.AdapterConfig{Table: "users", Alias: tt.alias})
			expect := mock.ExpectQuery(regexp.QuoteMeta(tt.want))
			if tt.planErr != nil {
				expect.WillReturnError(tt.planErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow("SEQ_SCAN"))
			}

			err := base.Verify(context.Background(), tt.rendered, tt.kind)
			if tt.planErr != nil {
				var verr *VerifyError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.kind, verr.Kind)
				assert.ErrorIs(t, err, tt.planErr)
				assert.Contains(t, err.Error(), "statement: SELECT 1 FROM users")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBaseSQLAdapter_VerifyTable(t *testing.T) {
	base, mock := newMockBase(t, core.AdapterConfig{Table: "users"})
	mock.ExpectQuery(regexp.QuoteMeta("EXPLAIN SELECT 1 FROM orders t WHERE t.total > 0")).
		WillReturnRows(sqlmock.NewRows([]string{"plan"}))

	require.NoError(t, base.VerifyTable(context.Background(), "orders", "{@}.total > 0", core.KindWhere))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildStatementErrors(t *testing.T) {
	_, err := BuildStatement(core.KindWhere, "{@}.a", "", "t")
	assert.ErrorContains(t, err, "table is required")

	_, err = BuildStatement(core.FragmentKind("having"), "{@}.a", "users", "t")
	assert.ErrorContains(t, err, `unknown fragment kind "having"`)
}

func TestGetTableMetadataCommon(t *testing.T) {
	base, mock := newMockBase(t, core.AdapterConfig{})
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("main", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("id", "INTEGER", "NO", 1).
			AddRow("name", "VARCHAR", "YES", 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM main.users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	meta, err := base.GetTableMetadataCommon(context.Background(), "users", "main", func(int) string { return "?" })
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, int64(3), meta.RowCount)
	require.Len(t, meta.Columns, 2)
	assert.False(t, meta.Columns[0].Nullable)
	assert.True(t, meta.Columns[1].Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingColumns(t *testing.T) {
	meta := &core.TableMetadata{Columns: []core.Column{{Name: "id"}, {Name: "First Name"}, {Name: "AGE"}}}

	tests := []struct {
		name     string
		rendered string
		want     []string
	}{
		{"all present", `{@}.id = 1 and {@}.age > 2`, nil},
		{"quoted", `{@}."First Name" is null`, nil},
		{"bracketed", `{@}.[first name] || {@}.zip`, []string{"zip"}},
		{"reported once", `{@}.zip + {@}.zip + {@}.city`, []string{"zip", "city"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingColumns(meta, tt.rendered))
		})
	}

	assert.Nil(t, MissingColumns(nil, "{@}.zip"))
}

func TestParseQualifiedName(t *testing.T) {
	schema, name := ParseQualifiedName("sales.orders", "public")
	assert.Equal(t, "sales", schema)
	assert.Equal(t, "orders", name)

	schema, name = ParseQualifiedName("orders", "public")
	assert.Equal(t, "public", schema)
	assert.Equal(t, "orders", name)
}
