package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	query, args, err := New(Postgres).Select("id").From("bookings").
		Where(squirrel.Eq{"item_id": 1, "status": "APPROVED"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE item_id = $1 AND status = $2", query)
	assert.Len(t, args, 2)

	query, _, err = New(SQLite).Select("id").From("bookings").
		Where(squirrel.Eq{"item_id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE item_id = ?", query)
}

func TestForUpdate(t *testing.T) {
	pg := New(Postgres)
	query, _, err := pg.ForUpdate(pg.Select("id").From("items")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM items FOR UPDATE", query)

	lite := New(SQLite)
	query, _, err = lite.ForUpdate(lite.Select("id").From("items")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM items", query)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
