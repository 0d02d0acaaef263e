// Package export writes parsed decks as a semicolon-delimited CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/spf13/afero"
)

// Delimiter separates the columns of a row.
const Delimiter = ';'

// Rows flattens decks into rows, deck order first, then card order.
func Rows(decks []doctree.Deck) []doctree.Row {
	rows := make([]doctree.Row, 0, doctree.CardCount(decks))
	for _, d := range decks {
		for _, c := range d.Cards {
			rows = append(rows, doctree.Row{
				UUID:     c.UUID,
				Question: c.Question,
				Answer:   c.Answer,
			})
		}
	}
	return rows
}

// WriteCSV writes one (uuid, question, answer) row per card. Fields holding
// the delimiter, quotes or line breaks are quoted.
func WriteCSV(w io.Writer, decks []doctree.Deck) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	cw.UseCRLF = runtime.GOOS == "windows"

	for _, row := range Rows(decks) {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("write row %q: %w", row.UUID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile exports decks to path on fs, replacing the contents of any
// existing file. Rows are rendered in memory first. A regular destination is
// replaced with a temp file and rename, so a failure never leaves a partial
// file behind; symlinks are followed and the existing mode is kept. Other
// destinations (pipes, devices) are truncated and written in place.
func WriteFile(fs afero.Fs, decks []doctree.Deck, path string) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, decks); err != nil {
		return err
	}

	dest, info, err := resolveDestination(fs, path)
	if err != nil {
		return err
	}
	if info == nil {
		return writeFileAtomic(fs, dest, buf.Bytes(), 0o644)
	}
	if !info.Mode().IsRegular() {
		return writeFileInPlace(fs, dest, buf.Bytes())
	}
	return writeFileAtomic(fs, dest, buf.Bytes(), info.Mode().Perm())
}

const maxSymlinks = 40

// resolveDestination follows symlinks from path to the file that will
// receive the rows. info is nil when that file does not exist yet.
func resolveDestination(fs afero.Fs, path string) (string, os.FileInfo, error) {
	for i := 0; i < maxSymlinks; i++ {
		info, err := lstat(fs, path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil, nil
		}
		if err != nil {
			return "", nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, info, nil
		}

		reader, ok := fs.(afero.LinkReader)
		if !ok {
			// Cannot see through the link; write through it instead of replacing it.
			return path, info, nil
		}
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", nil, fmt.Errorf("read link %s: %w", path, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return "", nil, fmt.Errorf("resolve %s: too many symlinks", path)
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

func writeFileInPlace(fs afero.Fs, path string, data []byte) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func writeFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Temp file lives next to the destination so the rename stays on one filesystem.
	tmpFile, err := afero.TempFile(fs, dir, ".mdanki-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
