package delivery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightcart/storefront-backend/pkg/money"
)

const optionsMigration = "20250901000003_create_delivery_options.sql"

// applyMigration replays the goose Up section of a shipped migration against
// an in-memory sqlite handle, so repository queries run against the same
// schema a migrated deployment gets. Postgres-only constructs are rewritten
// to sqlite equivalents before executing.
func applyMigration(t *testing.T, db *gorm.DB, filename string, withSeeds bool) {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", "pkg", "migrate", "migrations", filename))
	require.NoError(t, err)

	up := string(raw)
	if i := strings.Index(up, "-- +goose Down"); i >= 0 {
		up = up[:i]
	}
	up = strings.NewReplacer(
		"DEFAULT gen_random_uuid()", "",
		"DEFAULT now()", "DEFAULT CURRENT_TIMESTAMP",
		"TIMESTAMPTZ", "DATETIME",
		"TEXT[]", "TEXT",
		" UUID ", " TEXT ",
	).Replace(up)

	for _, chunk := range strings.Split(up, ";") {
		var kept []string
		for _, line := range strings.Split(chunk, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			kept = append(kept, line)
		}
		stmt := strings.TrimSpace(strings.Join(kept, "\n"))
		if stmt == "" || strings.HasPrefix(stmt, "CREATE EXTENSION") {
			continue
		}
		if !withSeeds && strings.HasPrefix(stmt, "INSERT INTO") {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error, "statement: %s", stmt)
	}
}

func setupOptionsTestDB(t *testing.T, withSeeds bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	applyMigration(t, db, optionsMigration, withSeeds)
	return db
}

func TestListOptionsReturnsSeededRowsInOrder(t *testing.T) {
	db := setupOptionsTestDB(t, true)
	repository := NewRepository(db)

	listed, err := repository.ListOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 3)

	assert.Equal(t, "Tomorrow", listed[0].Name)
	assert.Equal(t, "Next 3 Days", listed[1].Name)
	assert.Equal(t, "Next 5 Days", listed[2].Name)
	assert.Equal(t, 5, listed[2].DaysToDeliver)
	assert.True(t, listed[0].ShippingPrice.Equal(money.MustParse("12.90")))
	assert.True(t, listed[2].ShippingPrice.Equal(money.MustParse("4.90")))
	assert.True(t, listed[2].FreeShippingMinPrice.Equal(money.MustParse("35.00")))
}

func TestListOptionsEmptyTable(t *testing.T) {
	db := setupOptionsTestDB(t, false)
	repository := NewRepository(db)

	listed, err := repository.ListOptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestOptionRecordRoundTripsThroughMigratedSchema(t *testing.T) {
	db := setupOptionsTestDB(t, false)
	repository := NewRepository(db)

	record := OptionRecord{
		ID:                   uuid.New(),
		Name:                 "Store Pickup",
		DaysToDeliver:        0,
		ShippingPrice:        money.MustParse("0"),
		FreeShippingMinPrice: money.MustParse("0"),
		SortOrder:            7,
	}
	require.NoError(t, db.Create(&record).Error)

	listed, err := repository.ListOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, record.ID, listed[0].ID)
	assert.Equal(t, "Store Pickup", listed[0].Name)
	assert.Equal(t, 7, listed[0].SortOrder)
}
