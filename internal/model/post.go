package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for a post's publication time. Incoming data may use
// either; rows are always written back in the ISO layout.
const (
	TimeLayoutISO     = "2006-01-02T15:04:05"
	TimeLayoutDisplay = "2/01/2006 15:04"
)

// ErrInvalidPostTime is returned when a post time string matches neither
// accepted layout.
var ErrInvalidPostTime = fmt.Errorf("%w: unrecognized post time", ErrValidation)

// PostTime is a post's publication timestamp. It scans from legacy rows in
// either accepted layout and stores itself in the ISO layout.
type PostTime struct {
	time.Time
}

// ParsePostTime parses s using the ISO layout when it contains a 'T'
// separator and the display layout otherwise.
func ParsePostTime(s string) (PostTime, error) {
	layout := TimeLayoutDisplay
	if strings.Contains(s, "T") {
		layout = TimeLayoutISO
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return PostTime{}, fmt.Errorf("%w: %q", ErrInvalidPostTime, s)
	}
	return PostTime{t}, nil
}

// NewPostTime wraps an already-parsed time.
func NewPostTime(t time.Time) PostTime {
	return PostTime{t}
}

// Value implements driver.Valuer. Stored values are always ISO-formatted.
func (t PostTime) Value() (driver.Value, error) {
	return t.Format(TimeLayoutISO), nil
}

// Scan implements sql.Scanner.
func (t *PostTime) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParsePostTime(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParsePostTime(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		t.Time = v
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into PostTime", ErrValidation, src)
	}
}

// String renders the display layout used by list views.
func (t PostTime) String() string {
	return t.Format(TimeLayoutDisplay)
}

// Post represents a user's post with its engagement counters. Author is the
// denormalized username of the owning user; UserID is the owning user's id
// and is the key every mutating query is scoped by.
type Post struct {
	ID        int64     `db:"PostID" json:"id"`
	Content   string    `db:"Content" json:"content" validate:"required"`
	Author    string    `db:"Author" json:"author" validate:"required"`
	Likes     int       `db:"Likes" json:"likes" validate:"gte=0"`
	Shares    int       `db:"Shares" json:"shares" validate:"gte=0"`
	PostedAt  PostTime  `db:"DateTime" json:"posted_at"`
	UserID    int64     `db:"UserID" json:"user_id" validate:"required"`
	CreatedAt time.Time `db:"CreatedDate" json:"created_at"`
	UpdatedAt time.Time `db:"UpdatedOn" json:"updated_at"`
}

var (
	// ErrPostNotFound is returned when a post cannot be found
	ErrPostNotFound = errors.New("post not found")
)
