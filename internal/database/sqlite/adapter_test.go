package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaSQL = `
CREATE TABLE VEHICUL (
    VEHICUL_ID   INTEGER PRIMARY KEY,
    MARCA        VARCHAR2(50),
    NR_KILOMETRI NUMBER(10),
    FABRICAT     DATE
);
CREATE TABLE MENTENANTA (
    MENTENANTA_ID INTEGER PRIMARY KEY,
    VEHICUL_ID    INTEGER REFERENCES VEHICUL (VEHICUL_ID) ON DELETE CASCADE,
    COST          NUMERIC(10, 2)
);
CREATE TABLE ALOCARE (
    SOFER_ID   INTEGER,
    VEHICUL_ID INTEGER,
    PRIMARY KEY (VEHICUL_ID, SOFER_ID)
);
CREATE TABLE JURNAL (MESAJ TEXT);
INSERT INTO VEHICUL VALUES (1, 'Mercedes', 1000, '2020-01-02');
INSERT INTO MENTENANTA VALUES (1, 1, 300);
INSERT INTO MENTENANTA VALUES (2, 1, 450);
`

func openTemp(t *testing.T) *Adapter {
	t.Helper()
	a := New()
	require.NoError(t, a.Connect(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.ExecuteScript(context.Background(), schemaSQL))
	return a
}

func TestAdapter_Catalog(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	tables, err := a.GetAllTableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ALOCARE", "JURNAL", "MENTENANTA", "VEHICUL"}, tables)

	keys, err := a.GetPrimaryKeyColumns(ctx, "VEHICUL")
	require.NoError(t, err)
	assert.Equal(t, []string{"VEHICUL_ID"}, keys)

	keys, err = a.GetPrimaryKeyColumns(ctx, "ALOCARE")
	require.NoError(t, err)
	assert.Equal(t, []string{"VEHICUL_ID", "SOFER_ID"}, keys)

	keys, err = a.GetPrimaryKeyColumns(ctx, "JURNAL")
	require.NoError(t, err)
	assert.Empty(t, keys)

	cols, err := a.GetTableColumns(ctx, "VEHICUL")
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Equal(t, "VEHICUL_ID", cols[0].Name)
	assert.Equal(t, "INTEGER", cols[0].DeclaredType)
	assert.Equal(t, "VARCHAR2", cols[1].DeclaredType)
	assert.Equal(t, "VARCHAR2(50)", cols[1].NativeType)
	assert.Equal(t, "NUMBER", cols[2].DeclaredType)
	assert.Equal(t, "DATE", cols[3].DeclaredType)
}

func TestAdapter_ForeignKeysCascade(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	n, err := a.Exec(ctx, "DELETE FROM VEHICUL WHERE VEHICUL_ID = ?", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	result, err := a.Query(ctx, "SELECT * FROM MENTENANTA WHERE VEHICUL_ID = ?", 1)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestAdapter_Dialect(t *testing.T) {
	a := New()
	assert.Equal(t, "sqlite", a.Provider())
	assert.Equal(t, `"NR ""KM"""`, a.QuoteIdentifier(`NR "KM"`))

	sql, err := a.Placeholder().ReplacePlaceholders("WHERE A = ? AND B = ?")
	require.NoError(t, err)
	assert.Equal(t, "WHERE A = ? AND B = ?", sql)
}
