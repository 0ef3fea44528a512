package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postshub/internal/model"
)

var owner = &model.User{ID: 3, Username: "alice"}

func TestReadPosts(t *testing.T) {
	in := strings.Join([]string{
		"ID,Content,Author,Likes,Shares,DateTime",
		"1,hello world,alice,5,2,2023-10-05T14:30:00",
		"2,not mine,bob,9,9,2023-10-05T15:00:00",
		"3,legacy row,alice,1,0,5/10/2023 16:45",
	}, "\n")

	posts, err := ReadPosts(strings.NewReader(in), owner)
	require.NoError(t, err)
	require.Len(t, posts, 2, "rows by other authors are skipped")

	assert.Equal(t, "hello world", posts[0].Content)
	assert.Equal(t, 5, posts[0].Likes)
	assert.Equal(t, 2, posts[0].Shares)
	assert.Equal(t, owner.ID, posts[0].UserID)
	assert.Zero(t, posts[0].ID, "imported rows get fresh database ids")

	assert.Equal(t, "legacy row", posts[1].Content)
	assert.Equal(t, 16, posts[1].PostedAt.Hour(), "display-format times parse too")
}

func TestReadPostsEmptyFile(t *testing.T) {
	posts, err := ReadPosts(strings.NewReader(""), owner)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestReadPostsMalformed(t *testing.T) {
	cases := map[string]string{
		"missing columns": "ID,Content,Author,Likes,Shares,DateTime\n1,only,three",
		"bad likes":       "ID,Content,Author,Likes,Shares,DateTime\n1,hi,alice,many,2,2023-10-05T14:30:00",
		"bad shares":      "ID,Content,Author,Likes,Shares,DateTime\n1,hi,alice,5,lots,2023-10-05T14:30:00",
		"bad time":        "ID,Content,Author,Likes,Shares,DateTime\n1,hi,alice,5,2,someday",
		"empty content":   "ID,Content,Author,Likes,Shares,DateTime\n1,,alice,5,2,2023-10-05T14:30:00",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPosts(strings.NewReader(in), owner)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Contains(t, err.Error(), "line 2", "errors carry the offending line")
		})
	}
}

func TestWritePost(t *testing.T) {
	postedAt, err := model.ParsePostTime("2023-10-05T14:30:00")
	require.NoError(t, err)
	p := &model.Post{
		ID: 7, Content: "hello", Author: "alice",
		Likes: 5, Shares: 2, PostedAt: postedAt, UserID: 3,
	}

	var sb strings.Builder
	require.NoError(t, WritePost(&sb, p))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Content,Author,Likes,Shares,DateTime", lines[0])
	assert.Equal(t, "7,hello,alice,5,2,2023-10-05T14:30:00", lines[1])

	// Exported rows import back.
	posts, err := ReadPosts(strings.NewReader(sb.String()), owner)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
}
