package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver registration only

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

// Connect opens the SQLite database and ensures the schema exists.
// WAL mode plus a busy timeout keeps concurrent CLI invocations from
// tripping over "database locked" errors.
func Connect(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	ordersTable := `
	CREATE TABLE IF NOT EXISTS orders (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  source_file TEXT UNIQUE NOT NULL,
	  number TEXT,
	  ordered_at TEXT,
	  restaurant_name TEXT,
	  restaurant_address TEXT,
	  restaurant_city TEXT,
	  restaurant_postal_code TEXT,
	  restaurant_phone TEXT,
	  customer_name TEXT,
	  customer_address TEXT,
	  customer_city TEXT,
	  customer_postal_code TEXT,
	  customer_phone TEXT,
	  subtotal REAL,
	  delivery_fee REAL,
	  tip REAL,
	  credit REAL,
	  total REAL,
	  imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_orders_number ON orders(number);
	`
	if _, err := db.Exec(ordersTable); err != nil {
		return err
	}

	itemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  source_file TEXT NOT NULL,
	  position INTEGER NOT NULL,
	  quantity INTEGER,
	  name TEXT,
	  options TEXT,
	  price REAL,
	  FOREIGN KEY (source_file) REFERENCES orders (source_file)
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_source ON order_items(source_file);
	`
	if _, err := db.Exec(itemsTable); err != nil {
		return err
	}

	quotesTable := `
	CREATE TABLE IF NOT EXISTS quotes (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  text TEXT NOT NULL,
	  author TEXT NOT NULL,
	  tags TEXT,
	  text_embedding BLOB,
	  first_seen_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  last_seen_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  is_active INTEGER DEFAULT 1,
	  UNIQUE (text, author)
	);
	CREATE INDEX IF NOT EXISTS idx_quotes_active ON quotes(is_active);
	`
	if _, err := db.Exec(quotesTable); err != nil {
		return err
	}

	historyTable := `
	CREATE TABLE IF NOT EXISTS search_history (
	  query_text TEXT PRIMARY KEY,
	  embedding BLOB,
	  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(historyTable); err != nil {
		return err
	}

	return nil
}

func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// SaveOrders upserts extracted orders keyed by source filename. Line
// items are replaced wholesale per order so re-runs stay idempotent.
func SaveOrders(db *sql.DB, orders []models.Order) (int64, error) {
	upsertSQL := `
	INSERT INTO orders (
	  source_file, number, ordered_at,
	  restaurant_name, restaurant_address, restaurant_city, restaurant_postal_code, restaurant_phone,
	  customer_name, customer_address, customer_city, customer_postal_code, customer_phone,
	  subtotal, delivery_fee, tip, credit, total, imported_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(source_file) DO UPDATE SET
	  number = excluded.number,
	  ordered_at = excluded.ordered_at,
	  restaurant_name = excluded.restaurant_name,
	  restaurant_address = excluded.restaurant_address,
	  restaurant_city = excluded.restaurant_city,
	  restaurant_postal_code = excluded.restaurant_postal_code,
	  restaurant_phone = excluded.restaurant_phone,
	  customer_name = excluded.customer_name,
	  customer_address = excluded.customer_address,
	  customer_city = excluded.customer_city,
	  customer_postal_code = excluded.customer_postal_code,
	  customer_phone = excluded.customer_phone,
	  subtotal = excluded.subtotal,
	  delivery_fee = excluded.delivery_fee,
	  tip = excluded.tip,
	  credit = excluded.credit,
	  total = excluded.total,
	  imported_at = CURRENT_TIMESTAMP;
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var total int64
	for _, o := range orders {
		var orderedAt sql.NullString
		if o.Date != nil {
			orderedAt = sql.NullString{String: o.Date.Raw, Valid: true}
		}
		res, err := stmt.ExecContext(ctx,
			o.SourceFile, nullStr(o.Number), orderedAt,
			nullStr(o.Restaurant.Name), nullStr(o.Restaurant.Address), nullStr(o.Restaurant.City),
			nullStr(o.Restaurant.PostalCode), nullStr(o.Restaurant.Phone),
			nullStr(o.Customer.Name), nullStr(o.Customer.Address), nullStr(o.Customer.City),
			nullStr(o.Customer.PostalCode), nullStr(o.Customer.Phone),
			nullFloat(o.Totals.Subtotal), nullFloat(o.Totals.DeliveryFee), nullFloat(o.Totals.Tip),
			nullFloat(o.Totals.Credit), nullFloat(o.Totals.Total),
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to upsert order %s: %w", o.SourceFile, err)
		}
		rows, _ := res.RowsAffected()
		total += rows

		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE source_file = ?`, o.SourceFile); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to clear items for %s: %w", o.SourceFile, err)
		}
		for i, item := range o.Items {
			var options sql.NullString
			if len(item.Options) > 0 {
				options = sql.NullString{String: strings.Join(item.Options, "; "), Valid: true}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (source_file, position, quantity, name, options, price) VALUES (?, ?, ?, ?, ?, ?)`,
				o.SourceFile, i, nullInt(item.Quantity), nullStr(item.Name), options, nullFloat(item.Price),
			)
			if err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("failed to insert item for %s: %w", o.SourceFile, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

// MarkQuotesInactive sets is_active=0 for every quote. Called at the
// start of a crawl so vanished quotes drop out of search results.
func MarkQuotesInactive(db *sql.DB) error {
	_, err := db.Exec(`UPDATE quotes SET is_active = 0 WHERE is_active = 1;`)
	if err != nil {
		return fmt.Errorf("failed to mark quotes inactive: %w", err)
	}
	return nil
}

// SaveQuotes upserts crawled quotes keyed by (text, author) and marks
// them active again.
func SaveQuotes(db *sql.DB, quotes []models.Quote) (int64, error) {
	upsertSQL := `
	INSERT INTO quotes (text, author, tags, last_seen_at, is_active)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, 1)
	ON CONFLICT(text, author) DO UPDATE SET
	  tags = excluded.tags,
	  last_seen_at = CURRENT_TIMESTAMP,
	  is_active = 1;
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var total int64
	for _, q := range quotes {
		res, err := stmt.ExecContext(ctx, q.Text, q.Author, strings.Join(q.Tags, ","))
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to upsert quote by %s: %w", q.Author, err)
		}
		rows, _ := res.RowsAffected()
		total += rows
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

// GetUnembeddedQuotes returns id -> text-to-embed for active quotes
// missing a vector.
func GetUnembeddedQuotes(db *sql.DB) (map[int64]string, error) {
	rows, err := db.Query(`SELECT id, text, author FROM quotes WHERE is_active = 1 AND text_embedding IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[int64]string)
	for rows.Next() {
		var id int64
		var text, author string
		if err := rows.Scan(&id, &text, &author); err == nil {
			results[id] = fmt.Sprintf("Quote: %s\nAuthor: %s", text, author)
		}
	}
	return results, nil
}

// UpdateQuoteEmbedding saves the generated vector blob for one quote.
func UpdateQuoteEmbedding(db *sql.DB, id int64, embedding []byte) error {
	_, err := db.Exec(`UPDATE quotes SET text_embedding = ? WHERE id = ?`, embedding, id)
	return err
}

// QuoteVector is a quote together with its stored embedding.
type QuoteVector struct {
	ID     int64
	Text   string
	Author string
	Tags   string
	Vector []byte
}

// GetQuoteVectors returns all active quotes that have embeddings.
func GetQuoteVectors(db *sql.DB) ([]QuoteVector, error) {
	rows, err := db.Query(`SELECT id, text, author, tags, text_embedding FROM quotes WHERE is_active = 1 AND text_embedding IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []QuoteVector
	for rows.Next() {
		var qv QuoteVector
		if err := rows.Scan(&qv.ID, &qv.Text, &qv.Author, &qv.Tags, &qv.Vector); err == nil {
			results = append(results, qv)
		}
	}
	return results, nil
}

// GetCachedQuery tries to find a previously searched query vector.
func GetCachedQuery(db *sql.DB, text string) ([]byte, error) {
	var blob []byte
	err := db.QueryRow(`SELECT embedding FROM search_history WHERE query_text = ?`, text).Scan(&blob)
	return blob, err
}

// SaveCachedQuery saves a query and its vector to the history table.
func SaveCachedQuery(db *sql.DB, text string, blob []byte) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO search_history (query_text, embedding) VALUES (?, ?)`, text, blob)
	return err
}

// HistoryEntry is one cached search query.
type HistoryEntry struct {
	QueryText string
	CreatedAt time.Time
}

// ListSearchHistory returns all cached queries, newest first.
func ListSearchHistory(db *sql.DB) ([]HistoryEntry, error) {
	rows, err := db.Query(`SELECT query_text, created_at FROM search_history ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.QueryText, &e.CreatedAt); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ClearSearchHistory removes a specific query from the cache.
func ClearSearchHistory(db *sql.DB, queryText string) (int64, error) {
	res, err := db.Exec(`DELETE FROM search_history WHERE query_text = ?`, queryText)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearAllSearchHistory wipes the entire cache.
func ClearAllSearchHistory(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM search_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
