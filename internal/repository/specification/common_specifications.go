package specification

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// EscapeLike escapes LIKE metacharacters so user-controlled names cannot
// widen a prefix match onto another scope's rows. Backslash is Postgres's
// default LIKE escape character.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// ByScope filters rows to one (username, course) partition.
type ByScope struct {
	Username string
	Course   string
}

func (s ByScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ? AND course = ?", s.Username, s.Course)
}

// ByUsername filters by owner.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// BySessionId filters by chat session.
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// BySource filters material chunks by the file they came from.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// ByThreadId filters checkpoints by exact conversation thread.
type ByThreadId struct {
	ThreadId string
}

func (s ByThreadId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadId)
}

// ByThreadPrefix matches every thread of a scope, for bulk deletion.
type ByThreadPrefix struct {
	Prefix string
}

func (s ByThreadPrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id LIKE ?", EscapeLike(s.Prefix)+"%")
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
