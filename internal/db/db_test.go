package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, createSchema(db))
	return db
}

func strp(s string) *string { return &s }

func floatp(f float64) *float64 { return &f }

func intp(i int) *int { return &i }

func TestSaveOrdersUpsert(t *testing.T) {
	db := openTestDB(t)

	order := models.Order{
		SourceFile: "Mon_12_Aug_2024_19_32_05_.html",
		Number:     strp("123456"),
		Restaurant: models.Party{Name: strp("Chez Luigi")},
		Customer:   models.Party{Name: strp("Jean Dupont")},
		Items: []models.LineItem{
			{Quantity: intp(2), Name: strp("Margherita Pizza"), Price: floatp(9.50), Options: []string{"Extra mozzarella"}},
		},
		Totals: models.Totals{Total: floatp(21.50), DeliveryFee: floatp(2.50)},
	}

	count, err := SaveOrders(db, []models.Order{order})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var number, restaurant string
	var total float64
	err = db.QueryRow(`SELECT number, restaurant_name, total FROM orders WHERE source_file = ?`, order.SourceFile).
		Scan(&number, &restaurant, &total)
	require.NoError(t, err)
	assert.Equal(t, "123456", number)
	assert.Equal(t, "Chez Luigi", restaurant)
	assert.Equal(t, 21.50, total)

	var itemCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE source_file = ?`, order.SourceFile).Scan(&itemCount))
	assert.Equal(t, 1, itemCount)

	// Re-running the same order must update in place, not duplicate.
	order.Number = strp("654321")
	order.Items = append(order.Items, models.LineItem{Name: strp("Tiramisu maison")})
	_, err = SaveOrders(db, []models.Order{order})
	require.NoError(t, err)

	var orderCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orderCount))
	assert.Equal(t, 1, orderCount)
	require.NoError(t, db.QueryRow(`SELECT number FROM orders WHERE source_file = ?`, order.SourceFile).Scan(&number))
	assert.Equal(t, "654321", number)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE source_file = ?`, order.SourceFile).Scan(&itemCount))
	assert.Equal(t, 2, itemCount)
}

func TestSaveOrdersNullFields(t *testing.T) {
	db := openTestDB(t)

	_, err := SaveOrders(db, []models.Order{{SourceFile: "empty.html"}})
	require.NoError(t, err)

	var number sql.NullString
	var total sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT number, total FROM orders WHERE source_file = ?`, "empty.html").Scan(&number, &total))
	assert.False(t, number.Valid)
	assert.False(t, total.Valid)
}

func TestSaveQuotesUpsertAndSweep(t *testing.T) {
	db := openTestDB(t)

	quotes := []models.Quote{
		{Text: "The world as we have created it", Author: "Albert Einstein", Tags: []string{"change", "world"}},
		{Text: "It is our choices, Harry", Author: "J.K. Rowling", Tags: []string{"choices"}},
	}
	_, err := SaveQuotes(db, quotes)
	require.NoError(t, err)

	var active int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quotes WHERE is_active = 1`).Scan(&active))
	assert.Equal(t, 2, active)

	require.NoError(t, MarkQuotesInactive(db))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quotes WHERE is_active = 1`).Scan(&active))
	assert.Equal(t, 0, active)

	// Re-saving one quote reactivates it without duplicating the row.
	_, err = SaveQuotes(db, quotes[:1])
	require.NoError(t, err)

	var totalRows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&totalRows))
	assert.Equal(t, 2, totalRows)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quotes WHERE is_active = 1`).Scan(&active))
	assert.Equal(t, 1, active)
}

func TestQuoteEmbeddings(t *testing.T) {
	db := openTestDB(t)

	_, err := SaveQuotes(db, []models.Quote{{Text: "Imagination is more important", Author: "Albert Einstein"}})
	require.NoError(t, err)

	targets, err := GetUnembeddedQuotes(db)
	require.NoError(t, err)
	require.Len(t, targets, 1)

	for id, text := range targets {
		assert.Contains(t, text, "Albert Einstein")
		require.NoError(t, UpdateQuoteEmbedding(db, id, []byte{1, 2, 3, 4}))
	}

	targets, err = GetUnembeddedQuotes(db)
	require.NoError(t, err)
	assert.Empty(t, targets)

	vectors, err := GetQuoteVectors(db)
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, []byte{1, 2, 3, 4}, vectors[0].Vector)
}

func TestSearchHistoryCache(t *testing.T) {
	db := openTestDB(t)

	_, err := GetCachedQuery(db, "missing")
	assert.Error(t, err)

	require.NoError(t, SaveCachedQuery(db, "funky quotes", []byte{9, 9}))
	blob, err := GetCachedQuery(db, "funky quotes")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, blob)

	entries, err := ListSearchHistory(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "funky quotes", entries[0].QueryText)

	affected, err := ClearSearchHistory(db, "funky quotes")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	require.NoError(t, SaveCachedQuery(db, "a", nil))
	require.NoError(t, SaveCachedQuery(db, "b", nil))
	affected, err = ClearAllSearchHistory(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
}
