package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/marishandmade/storefront/internal/catalog"
)

// SnapshotVersion tags the on-disk format. Bumping it is the migration
// mechanism: older snapshots are ignored rather than migrated, and the store
// falls back to seed data.
const SnapshotVersion = 4

// State is the serialized {products, orders, siteConfig} triple.
type State struct {
	Version    int               `json:"version"`
	Products   []catalog.Product `json:"products"`
	Orders     []Order           `json:"orders"`
	SiteConfig SiteConfig        `json:"siteConfig"`
}

// SnapshotFile persists the store state to a single named slot on disk, read
// once at startup and rewritten after every mutation.
type SnapshotFile struct {
	path string
}

func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Load reads the snapshot. A missing file or a version mismatch is not an
// error: it reports ok=false and the caller keeps its seed data.
func (f *SnapshotFile) Load() (State, bool, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, false, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	if st.Version != SnapshotVersion {
		return State{}, false, nil
	}

	return st, true, nil
}

// Save writes the snapshot atomically: marshal, write a sibling temp file,
// rename over the slot.
func (f *SnapshotFile) Save(st State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", f.path, err)
	}

	return nil
}
