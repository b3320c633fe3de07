package postgres

import (
	"context"
	"math/big"
	"testing"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Adapter, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWithPool(mock), mock
}

func TestAdapter_Catalog(t *testing.T) {
	a, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`FROM information_schema.tables`).
		WillReturnRows(pgxmock.NewRows([]string{"table_name"}).AddRow("mentenanta").AddRow("vehicul"))
	mock.ExpectQuery(`FROM information_schema.table_constraints`).
		WithArgs("vehicul").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).AddRow("vehicul_id"))
	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("vehicul").
		WillReturnRows(pgxmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("vehicul_id", "integer").
			AddRow("marca", "character varying").
			AddRow("nr_kilometri", "numeric").
			AddRow("data_fabricatie", "date"))

	tables, err := a.GetAllTableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mentenanta", "vehicul"}, tables)

	keys, err := a.GetPrimaryKeyColumns(ctx, "vehicul")
	require.NoError(t, err)
	assert.Equal(t, []string{"vehicul_id"}, keys)

	cols, err := a.GetTableColumns(ctx, "vehicul")
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Equal(t, "INTEGER", cols[0].DeclaredType)
	assert.Equal(t, "VARCHAR", cols[1].DeclaredType)
	assert.Equal(t, "NUMBER", cols[2].DeclaredType)
	assert.Equal(t, "numeric", cols[2].NativeType)
	assert.Equal(t, "DATE", cols[3].DeclaredType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CompositeKeyOrder(t *testing.T) {
	a, mock := newMock(t)

	mock.ExpectQuery(`ORDER BY kcu.ordinal_position`).
		WithArgs("alocare").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).AddRow("vehicul_id").AddRow("sofer_id"))

	keys, err := a.GetPrimaryKeyColumns(context.Background(), "alocare")
	require.NoError(t, err)
	assert.Equal(t, []string{"vehicul_id", "sofer_id"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_NumericDefault(t *testing.T) {
	a, mock := newMock(t)

	km := pgtype.Numeric{Int: big.NewInt(3805), Exp: 2, Valid: true}
	mock.ExpectQuery(`SELECT \* FROM "vehicul" WHERE "vehicul_id" = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"vehicul_id", "nr_kilometri"}).AddRow(int64(3), km))

	result, err := a.Query(context.Background(), `SELECT * FROM "vehicul" WHERE "vehicul_id" = $1`, int64(3))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	field := form.NewSynthesizer(nil).NewField(
		types.ColumnDescriptor{Name: "nr_kilometri", DeclaredType: "NUMBER"}, result.Rows[0]["nr_kilometri"])
	assert.Equal(t, form.KindNumeric, field.Kind())
	assert.Equal(t, 380500.0, field.Default())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Exec(t *testing.T) {
	a, mock := newMock(t)

	mock.ExpectExec(`UPDATE "vehicul" SET "marca" = \$1 WHERE "vehicul_id" = \$2`).
		WithArgs("Scania", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := a.Exec(context.Background(), `UPDATE "vehicul" SET "marca" = $1 WHERE "vehicul_id" = $2`, "Scania", int64(3))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_NotConnected(t *testing.T) {
	a := New()
	ctx := context.Background()

	_, err := a.Query(ctx, "SELECT 1")
	assert.Error(t, err)
	_, err = a.Exec(ctx, "SELECT 1")
	assert.Error(t, err)
	assert.Error(t, a.Ping(ctx))
	assert.NoError(t, a.Close())
}

func TestAdapter_Dialect(t *testing.T) {
	a := New()
	assert.Equal(t, "postgresql", a.Provider())
	assert.Equal(t, `"VEHICUL"`, a.QuoteIdentifier("VEHICUL"))
	assert.Equal(t, `"A""B"`, a.QuoteIdentifier(`A"B`))
}
