package note

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dryRunDB builds statements against the postgres dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=notes dbname=notes sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func composed(t *testing.T, f Filter) *gorm.Statement {
	t.Helper()

	var rows []Note
	return window(scoped(dryRunDB(t), f), f).Find(&rows).Statement
}

func TestCompose_OwnerScopeWithoutSearch(t *testing.T) {
	owner := uuid.New()
	f := Query{Page: 1}.Filter(owner)

	stmt := composed(t, f)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "owner_id = $1")
	assert.NotContains(t, sql, "ILIKE")
	require.NotEmpty(t, stmt.Vars)
	assert.Equal(t, owner, stmt.Vars[0])
}

func TestCompose_WhitespaceSearchIsNoFilter(t *testing.T) {
	f := Filter{OwnerID: uuid.New(), Search: "   ", Sort: SortUpdatedAt, Order: OrderDesc, Limit: 12}

	sql := composed(t, f).SQL.String()

	assert.NotContains(t, sql, "ILIKE")
}

func TestCompose_SearchMatchesTitleOrContent(t *testing.T) {
	f := Query{Search: "  groceries ", Page: 1}.Filter(uuid.New())

	stmt := composed(t, f)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "(title ILIKE $2 OR content ILIKE $3)")
	assert.Contains(t, stmt.Vars, "%groceries%")
}

func TestCompose_SearchEscapesWildcards(t *testing.T) {
	f := Query{Search: `50%_off\`, Page: 1}.Filter(uuid.New())

	stmt := composed(t, f)

	assert.Contains(t, stmt.Vars, `%50\%\_off\\%`)
}

func TestCompose_SortAndWindow(t *testing.T) {
	f := Query{Page: 3, PageSize: 12}.Filter(uuid.New())

	stmt := composed(t, f)
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `ORDER BY "updated_at" DESC`)

	c, ok := stmt.Clauses["LIMIT"]
	require.True(t, ok)
	limit, ok := c.Expression.(clause.Limit)
	require.True(t, ok)
	require.NotNil(t, limit.Limit)
	assert.Equal(t, 12, *limit.Limit)
	assert.Equal(t, 24, limit.Offset)
}

func TestCompose_AscendingTitleSort(t *testing.T) {
	f := Query{Page: 1, Sort: SortTitle, Order: OrderAsc}.Filter(uuid.New())

	sql := composed(t, f).SQL.String()

	assert.Contains(t, sql, `ORDER BY "title","id"`)
}
