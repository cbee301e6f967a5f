package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// File permission constants.
const (
	dirPerm      = 0o755
	filePerm     = 0o644
	readOnlyPerm = 0o444
)

// WriteResult counts what WriteFiles did.
type WriteResult struct {
	Written   int
	Unchanged int
}

// WriteFiles writes all generated files below the output directory,
// creating directories as needed. Files whose content is unchanged are not
// touched, so file watchers and build caches see no change. With ReadOnly
// set, written files are made read-only.
func (g *Generator) WriteFiles(files []GeneratedFile) (WriteResult, error) {
	var res WriteResult

	if err := os.MkdirAll(g.cfg.OutputDir, dirPerm); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(file.Filename))

		old, err := os.ReadFile(outputPath)
		switch {
		case err == nil && bytes.Equal(old, file.Content):
			res.Unchanged++
			continue
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return res, fmt.Errorf("reading file %s: %w", file.Filename, err)
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return res, fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		if err == nil {
			// A previous run may have left the file read-only.
			if err := os.Chmod(outputPath, filePerm); err != nil {
				return res, fmt.Errorf("making %s writable: %w", file.Filename, err)
			}
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return res, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if g.cfg.ReadOnly {
			if err := os.Chmod(outputPath, readOnlyPerm); err != nil {
				return res, fmt.Errorf("making %s read-only: %w", file.Filename, err)
			}
		}

		g.log.Debug("wrote file", zap.String("file", file.Filename), zap.Int("bytes", len(file.Content)))

		res.Written++
	}

	g.log.Info("wrote generated files",
		zap.String("dir", g.cfg.OutputDir),
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged))

	return res, nil
}
