package snapshot

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

const tableName = "household_items"

var columns = []string{"address", "item_id", "name", "quantity", "image_ref", "added_at", "position"}

const schema = `
CREATE TABLE IF NOT EXISTS household_items (
	address   TEXT        NOT NULL,
	item_id   TEXT        NOT NULL,
	name      TEXT        NOT NULL,
	quantity  INTEGER     NOT NULL CHECK (quantity >= 0),
	image_ref TEXT,
	added_at  TIMESTAMPTZ,
	position  INTEGER     NOT NULL,
	saved_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (address, item_id)
)`

// Cache stores household snapshots in Postgres. It implements
// inventory.SnapshotCache.
type Cache struct {
	pool *pgxpool.Pool
}

var _ inventory.SnapshotCache = (*Cache)(nil)

// New returns a Cache using pool. Call EnsureSchema once before use.
func New(pool *pgxpool.Pool) *Cache {
	return &Cache{pool: pool}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (c *Cache) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("snapshot: create schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot of address with items, in one
// transaction. Item order is kept.
func (c *Cache) Save(ctx context.Context, address string, items []inventory.Item) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: begin: %w", err)
	}
	defer tx.Rollback(ctx) // No-op once committed

	if _, err := tx.Exec(ctx, `DELETE FROM household_items WHERE address = $1`, address); err != nil {
		return fmt.Errorf("snapshot: clear %q: %w", address, err)
	}

	if len(items) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{tableName},
			columns,
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				return toRow(i, items[i]).values(address), nil
			}),
		)
		if err != nil {
			return fmt.Errorf("snapshot: copy %d items: %w", len(items), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	return nil
}

// Load returns the stored snapshot of address, or nil if there is none.
func (c *Cache) Load(ctx context.Context, address string) ([]inventory.Item, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT item_id, name, quantity, image_ref, added_at, position
		FROM household_items
		WHERE address = $1
		ORDER BY position`, address)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %q: %w", address, err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var r itemRow
		if err := rows.Scan(&r.ItemID, &r.Name, &r.Quantity, &r.ImageRef, &r.AddedAt, &r.Position); err != nil {
			return nil, fmt.Errorf("snapshot: scan: %w", err)
		}
		items = append(items, r.toItem())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: load %q: %w", address, err)
	}
	return items, nil
}
