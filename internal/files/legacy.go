package files

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nimbushr/hrms/internal/utils"
)

// legacyFullPath confines a stored legacy reference to the uploads root.
// Cleaning the path as rooted strips any ".." escape before joining.
func (s *GridStore) legacyFullPath(ref string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+ref)))
}

func (s *GridStore) openLegacy(ref string) (*Content, error) {
	const op = "GridStore.openLegacy"

	full := s.legacyFullPath(ref)
	f, err := s.legacy.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, utils.E(utils.CodeNotFound, op, "file not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to open file", err)
	}

	size := int64(-1)
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	return &Content{
		Filename:    filepath.Base(full),
		ContentType: TypeByExtension(full),
		Size:        size,
		Body:        f,
	}, nil
}

func (s *GridStore) deleteLegacy(ref string) error {
	const op = "GridStore.deleteLegacy"

	err := s.legacy.Remove(s.legacyFullPath(ref))
	if err != nil && !os.IsNotExist(err) {
		return utils.E(utils.CodeInternal, op, "failed to delete file", err)
	}
	return nil
}

// TypeByExtension infers a download content type for legacy files, which
// were stored without metadata.
func TypeByExtension(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".pdf":
		return "application/pdf"
	case ".doc", ".docx":
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}
