package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ai-datavault-be/internal/pkg/apperrors"
)

// Workspace is the scratch directory one archive batch is unpacked into,
// named temp_<importId> under the upload dir. Callers must Close it on every
// exit path; Close removes the whole tree.
type Workspace struct {
	dir string
}

// OpenWorkspace creates the batch directory and unpacks the archive into it.
// On any extraction failure the directory is removed before returning.
func OpenWorkspace(baseDir, importId string, archive []byte) (*Workspace, error) {
	dir := filepath.Join(baseDir, "temp_"+importId)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w := &Workspace{dir: dir}
	if err := w.extract(archive); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

func (w *Workspace) extract(archive []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return apperrors.NewValidationError("archive", "not a readable zip archive")
	}
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		target := filepath.Join(w.dir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, w.dir+string(os.PathSeparator)) {
			return apperrors.NewValidationError("archive", fmt.Sprintf("entry %q escapes the workspace", f.Name))
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := copyEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Records reads the entity file for the given prefix (conversations, users,
// projects). Files are matched by name anywhere in the tree, e.g.
// conversations.json or conversations_2024.json. A missing file is not an
// error: (nil, false, nil). A file that is present but unparsable, or whose
// top level is not an array, fails the whole batch with a ValidationError.
func (w *Workspace) Records(prefix string) ([]map[string]interface{}, bool, error) {
	path, err := w.findEntityFile(prefix)
	if err != nil {
		return nil, false, err
	}
	if path == "" {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, true, err
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, true, apperrors.NewValidationError(prefix, fmt.Sprintf("%s is not a JSON array of objects", filepath.Base(path)))
	}
	return records, true, nil
}

func (w *Workspace) findEntityFile(prefix string) (string, error) {
	var match string
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || match != "" {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".json") {
			match = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return match, nil
}
