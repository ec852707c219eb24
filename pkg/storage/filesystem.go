package storage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ai-coursechat-be/pkg/apperrors"
)

// Materials keeps uploaded course files on disk, laid out as
// <root>/<username>/<course>/<filename>.
type Materials struct {
	root string
}

func NewMaterials(root string) *Materials {
	return &Materials{root: root}
}

func (m *Materials) userDir(username string) string {
	return filepath.Join(m.root, sanitize(username))
}

func (m *Materials) courseDir(username, course string) string {
	return filepath.Join(m.userDir(username), sanitize(course))
}

// MaterialPath returns the on-disk path for a stored material.
func (m *Materials) MaterialPath(username, course, filename string) string {
	return filepath.Join(m.courseDir(username, course), sanitize(filename))
}

// sanitize strips path separators so user-supplied names cannot escape the root.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name
}

// Exists reports whether a material is already stored for the course.
func (m *Materials) Exists(username, course, filename string) bool {
	_, err := os.Stat(m.MaterialPath(username, course, filename))
	return err == nil
}

// SaveMaterial writes the material content, creating the course directory as needed.
func (m *Materials) SaveMaterial(username, course, filename string, r io.Reader) error {
	dir := m.courseDir(username, course)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create course directory: %w", err)
	}

	f, err := os.Create(m.MaterialPath(username, course, filename))
	if err != nil {
		return fmt.Errorf("failed to create material file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write material file: %w", err)
	}
	return nil
}

// DeleteMaterial removes a stored material. Missing files return ErrNotFound.
func (m *Materials) DeleteMaterial(username, course, filename string) error {
	err := os.Remove(m.MaterialPath(username, course, filename))
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.ErrNotFound
	}
	return err
}

// CreateCourse creates an empty course directory. Creating an existing course
// is a duplicate.
func (m *Materials) CreateCourse(username, course string) error {
	dir := m.courseDir(username, course)
	if _, err := os.Stat(dir); err == nil {
		return apperrors.ErrDuplicate
	}
	return os.MkdirAll(dir, 0o755)
}

// ListCourses returns the course names a user has, sorted.
func (m *Materials) ListCourses(username string) ([]string, error) {
	entries, err := os.ReadDir(m.userDir(username))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	courses := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			courses = append(courses, e.Name())
		}
	}
	sort.Strings(courses)
	return courses, nil
}

// ListDocuments returns the filenames stored for a course, sorted.
func (m *Materials) ListDocuments(username, course string) ([]string, error) {
	entries, err := os.ReadDir(m.courseDir(username, course))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			docs = append(docs, e.Name())
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// ListMaterials returns every stored material for a user keyed by course.
func (m *Materials) ListMaterials(username string) (map[string][]string, error) {
	courses, err := m.ListCourses(username)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(courses))
	for _, course := range courses {
		docs, err := m.ListDocuments(username, course)
		if err != nil {
			return nil, err
		}
		out[course] = docs
	}
	return out, nil
}

// DeleteCourse removes a course directory and everything in it.
func (m *Materials) DeleteCourse(username, course string) error {
	dir := m.courseDir(username, course)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return apperrors.ErrNotFound
	}
	return os.RemoveAll(dir)
}

// RemoveCourseIfEmpty deletes the course directory when its last material is gone.
func (m *Materials) RemoveCourseIfEmpty(username, course string) error {
	docs, err := m.ListDocuments(username, course)
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return nil
	}
	return os.RemoveAll(m.courseDir(username, course))
}

// ZipCourse streams all course materials as a zip archive.
func (m *Materials) ZipCourse(username, course string, w io.Writer) error {
	docs, err := m.ListDocuments(username, course)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return apperrors.ErrNotFound
	}

	zw := zip.NewWriter(w)
	for _, doc := range docs {
		f, err := os.Open(m.MaterialPath(username, course, doc))
		if err != nil {
			zw.Close()
			return err
		}

		entry, err := zw.Create(doc)
		if err != nil {
			f.Close()
			zw.Close()
			return err
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			zw.Close()
			return err
		}
		f.Close()
	}
	return zw.Close()
}
