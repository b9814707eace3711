package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// snapshot is the interchange document written next to the seed file and
// accepted back by the bulk-import endpoint.
type snapshot struct {
	Products []Record `json:"products"`
}

// Importer seeds the product store from the hand-kept inventory text file.
// The import runs once: it is skipped whenever the store already holds
// products, so restarting the server never duplicates the catalog.
type Importer struct {
	store Store
	log   *slog.Logger
}

// NewImporter creates an Importer over the given store.
func NewImporter(store Store, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{store: store, log: log}
}

// SeedFromFile parses filePath and bulk-inserts the recovered records if
// the store is empty. When snapshotPath is non-empty, the parsed records
// are also written there as a {"products":[...]} JSON document for later
// re-import. A missing seed file is not an error; it only logs.
// Returns the number of records imported (0 when skipped).
func (im *Importer) SeedFromFile(ctx context.Context, filePath, snapshotPath string) (int, error) {
	count, err := im.store.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		im.log.Info("store already seeded, skipping import", "products", count)
		return 0, nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			im.log.Warn("inventory file not found, starting with empty catalog", "path", filePath)
			return 0, nil
		}
		return 0, fmt.Errorf("open inventory file: %w", err)
	}
	defer f.Close()

	importID := uuid.New().String()
	log := im.log.With("import_id", importID, "file", filePath)

	records, diags := ParseLines(f)
	for _, d := range diags {
		log.Warn("line skipped",
			"line", d.Line,
			"text", d.Text,
			"error", d.Message,
		)
	}

	if err := im.store.BulkInsert(ctx, records); err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}

	if snapshotPath != "" {
		if err := writeSnapshot(snapshotPath, records); err != nil {
			// The catalog is already in the store; losing the snapshot
			// copy is not fatal.
			log.Warn("failed to write snapshot", "path", snapshotPath, "error", err)
		}
	}

	log.Info("inventory imported", "products", len(records), "skipped_lines", len(diags))
	return len(records), nil
}

// writeSnapshot stores records as the {"products":[...]} document.
func writeSnapshot(path string, records []Record) error {
	doc, err := json.MarshalIndent(snapshot{Products: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
