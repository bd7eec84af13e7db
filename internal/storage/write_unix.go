//go:build !windows

package storage

import "github.com/google/renameio/v2"

// writeFileAtomic replaces path via a synced temp file and rename, so readers
// such as the settings watcher never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644)
}
