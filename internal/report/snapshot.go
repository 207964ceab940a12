package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/exposurescan/exposurescan/internal/model"
)

// ErrSnapshotExists is returned when a snapshot for the same scan id and
// timestamp already exists. Snapshots are write-once records.
var ErrSnapshotExists = errors.New("snapshot already exists")

// scanIDPrefixLength is how many scan-id characters key the snapshot
// filename.
const scanIDPrefixLength = 8

// Snapshot persists a scan report as a write-once JSON document.
// One file per scan; there are no update semantics. Files are created
// with 0600 because the report embeds the scanned identity.
//
// The filename is scan_<scanid-prefix>_<timestamp>.json, so snapshots of
// repeated scans for the same identity sort chronologically next to each
// other.
func Snapshot(report *model.ScanReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	prefix := report.ScanID
	if len(prefix) > scanIDPrefixLength {
		prefix = prefix[:scanIDPrefixLength]
	}
	name := fmt.Sprintf("scan_%s_%s.json", prefix, report.ScanDate.UTC().Format("20060102T150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')

	// O_EXCL enforces write-once semantics.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSnapshotExists, path)
		}
		return "", fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}
