package storage

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/pkg/apperrors"
)

func newTestMaterials(t *testing.T) *Materials {
	t.Helper()
	return NewMaterials(t.TempDir())
}

func TestSaveAndListMaterials(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week1.pdf", strings.NewReader("pdf-bytes")))
	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week2.pdf", strings.NewReader("pdf-bytes")))
	require.NoError(t, m.SaveMaterial("alice", "databases", "intro.pdf", strings.NewReader("pdf-bytes")))

	assert.True(t, m.Exists("alice", "algorithms", "week1.pdf"))
	assert.False(t, m.Exists("alice", "algorithms", "week9.pdf"))

	docs, err := m.ListDocuments("alice", "algorithms")
	require.NoError(t, err)
	assert.Equal(t, []string{"week1.pdf", "week2.pdf"}, docs)

	all, err := m.ListMaterials("alice")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []string{"intro.pdf"}, all["databases"])
}

func TestListCoursesForUnknownUserIsEmpty(t *testing.T) {
	m := newTestMaterials(t)

	courses, err := m.ListCourses("nobody")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestDeleteMaterialMissingFile(t *testing.T) {
	m := newTestMaterials(t)

	err := m.DeleteMaterial("alice", "algorithms", "ghost.pdf")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCreateCourseTwiceIsDuplicate(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.CreateCourse("alice", "algorithms"))
	err := m.CreateCourse("alice", "algorithms")
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestRemoveCourseIfEmpty(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week1.pdf", strings.NewReader("x")))

	// not empty yet
	require.NoError(t, m.RemoveCourseIfEmpty("alice", "algorithms"))
	courses, _ := m.ListCourses("alice")
	assert.Equal(t, []string{"algorithms"}, courses)

	require.NoError(t, m.DeleteMaterial("alice", "algorithms", "week1.pdf"))
	require.NoError(t, m.RemoveCourseIfEmpty("alice", "algorithms"))
	courses, _ = m.ListCourses("alice")
	assert.Empty(t, courses)
}

func TestDeleteCourseRemovesEverything(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week1.pdf", strings.NewReader("x")))
	require.NoError(t, m.DeleteCourse("alice", "algorithms"))

	assert.False(t, m.Exists("alice", "algorithms", "week1.pdf"))
	assert.True(t, errors.Is(m.DeleteCourse("alice", "algorithms"), apperrors.ErrNotFound))
}

func TestSanitizeBlocksPathTraversal(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.SaveMaterial("alice", "../escape", "../../etc/passwd", strings.NewReader("x")))

	courses, err := m.ListCourses("alice")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.NotContains(t, courses[0], "..")
}

func TestZipCourseContainsAllDocuments(t *testing.T) {
	m := newTestMaterials(t)

	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week1.pdf", strings.NewReader("one")))
	require.NoError(t, m.SaveMaterial("alice", "algorithms", "week2.pdf", strings.NewReader("two")))

	var buf bytes.Buffer
	require.NoError(t, m.ZipCourse("alice", "algorithms", &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"week1.pdf", "week2.pdf"}, names)
}

func TestZipCourseEmptyCourse(t *testing.T) {
	m := newTestMaterials(t)

	var buf bytes.Buffer
	err := m.ZipCourse("alice", "nothing", &buf)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
