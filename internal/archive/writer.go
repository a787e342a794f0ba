package archive

import (
	"archive/zip"
	"fmt"
	"os"
)

// Writer appends page bodies to a ZIP archive as DEFLATE entries.
type Writer struct {
	file *os.File
	zw   *zip.Writer
}

// Create opens the target archive for writing. The file must not exist yet;
// ResolveTarget has already probed for collisions, the exclusive open is the
// backstop.
func Create(target string) (*Writer, error) {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", target, err)
	}
	return &Writer{file: f, zw: zip.NewWriter(f)}, nil
}

// Add writes one named entry. The format permits duplicate names; readers
// see every entry in write order, so the last entry with a name wins.
func (w *Writer) Add(name string, body []byte) error {
	entry, err := w.zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := entry.Write(body); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

// Close flushes the central directory and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		w.file.Close() //nolint:errcheck // already failing
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close archive file: %w", err)
	}
	return nil
}
