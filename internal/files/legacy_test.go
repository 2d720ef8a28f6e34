package files

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/hrms/internal/utils"
)

func newLegacyStore(t *testing.T) (*GridStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &GridStore{legacy: fs, root: "/srv/hrms", log: log}, fs
}

func TestOpenLegacy(t *testing.T) {
	s, fs := newLegacyStore(t)

	payload := []byte("%PDF-1.4 legacy resume")
	require.NoError(t, afero.WriteFile(fs, "/srv/hrms/uploads/resumes/old.pdf", payload, 0o644))

	content, err := s.openLegacy("/uploads/resumes/old.pdf")
	require.NoError(t, err)
	defer content.Body.Close()

	assert.Equal(t, "old.pdf", content.Filename)
	assert.Equal(t, "application/pdf", content.ContentType)
	assert.Equal(t, int64(len(payload)), content.Size)

	got, err := io.ReadAll(content.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestOpenLegacyMissing(t *testing.T) {
	s, _ := newLegacyStore(t)

	_, err := s.openLegacy("/uploads/resumes/gone.pdf")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestOpenLegacyConfinedToRoot(t *testing.T) {
	s, fs := newLegacyStore(t)

	require.NoError(t, afero.WriteFile(fs, "/srv/secret.pdf", []byte("secret"), 0o644))

	// ".." segments are stripped before joining, so the traversal resolves
	// inside the root and misses.
	_, err := s.openLegacy("/../secret.pdf")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestDeleteLegacy(t *testing.T) {
	s, fs := newLegacyStore(t)

	require.NoError(t, afero.WriteFile(fs, "/srv/hrms/uploads/documents/doc.docx", []byte("x"), 0o644))
	require.NoError(t, s.deleteLegacy("/uploads/documents/doc.docx"))

	exists, err := afero.Exists(fs, "/srv/hrms/uploads/documents/doc.docx")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent file is not an error
	assert.NoError(t, s.deleteLegacy("/uploads/documents/doc.docx"))
}

func TestTypeByExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", TypeByExtension("a/b/cv.PDF"))
	assert.Equal(t, "application/msword", TypeByExtension("x.doc"))
	assert.Equal(t, "application/msword", TypeByExtension("x.docx"))
	assert.Equal(t, "application/octet-stream", TypeByExtension("x.png"))
	assert.Equal(t, "application/octet-stream", TypeByExtension("noext"))
}
