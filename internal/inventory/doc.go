// Package inventory reconciles client-held household inventory with the
// authoritative item store and runs the bulk-import pipeline.
//
// This package holds the domain logic only. It has no knowledge of HTTP
// routing or presentation and can be driven by the web server, the CLI, or
// tests without modification.
//
// # Import Pipeline
//
// A bulk import flows one direction:
//
//  1. [Decode] turns raw bytes (delimited text or an .xlsx workbook) into a
//     lazy sequence of [RawRow] values keyed by header label.
//  2. [Normalize] maps each row to an [ItemDraft] or skips it. Header labels
//     are resolved through a small alias table, so "Item Name", "item_name"
//     and "NAME" all feed the name field.
//  3. [Limit] truncates the drafts to [DefaultBatchLimit] in file order.
//  4. The batch is submitted to the [Upstream] in one request.
//  5. Every confirmed [Item] is merged into the household [Store].
//
// A submission failure leaves the Store untouched. Nothing is applied until
// the authoritative store confirms it.
//
// # Deletion
//
// Delete requests are resolved by the response tag the upstream returns:
// "deleted" removes the item, "decremented" replaces it with the
// server-supplied item. The new quantity is never computed locally.
//
// # Concurrency
//
// Each household has one [Store] guarded by a single RWMutex and one import
// gate allowing a single import at a time. Decoding and normalization run
// without locks; only the final merge takes the write lock.
package inventory
