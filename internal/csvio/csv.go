package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"postshub/internal/model"
)

// Column order of post CSV files, header included: ID, Content, Author,
// Likes, Shares, DateTime. The ID column is ignored on import; the database
// assigns its own.
var header = []string{"ID", "Content", "Author", "Likes", "Shares", "DateTime"}

// ReadPosts parses Post records from r. The first row is treated as a
// header and skipped. Rows whose author is not owner's username are
// silently dropped; the importer only ever brings in its own posts.
// Malformed rows fail the whole import with a model.ErrValidation cause
// carrying the offending line number.
func ReadPosts(r io.Reader, owner *model.User) ([]*model.Post, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var posts []*model.Post
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", model.ErrValidation, line, err)
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d", model.ErrValidation, line, len(header), len(record))
		}

		content, err := checkString(record[1], line, "content")
		if err != nil {
			return nil, err
		}
		author, err := checkString(record[2], line, "author")
		if err != nil {
			return nil, err
		}
		likes, err := checkInt(record[3], line, "likes")
		if err != nil {
			return nil, err
		}
		shares, err := checkInt(record[4], line, "shares")
		if err != nil {
			return nil, err
		}
		postedAt, err := model.ParsePostTime(record[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if author != owner.Username {
			continue
		}
		posts = append(posts, &model.Post{
			Content:  content,
			Author:   author,
			Likes:    likes,
			Shares:   shares,
			PostedAt: postedAt,
			UserID:   owner.ID,
		})
	}
	return posts, nil
}

// WritePost writes a header row plus the given post.
func WritePost(w io.Writer, p *model.Post) error {
	cw := csv.NewWriter(w)
	record := []string{
		strconv.FormatInt(p.ID, 10),
		p.Content,
		p.Author,
		strconv.Itoa(p.Likes),
		strconv.Itoa(p.Shares),
		p.PostedAt.Format(model.TimeLayoutISO),
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write csv record: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func checkString(v string, line int, field string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("%w: line %d: missing %s", model.ErrValidation, line, field)
	}
	return v, nil
}

func checkInt(v string, line int, field string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: bad %s %q", model.ErrValidation, line, field, v)
	}
	return n, nil
}
