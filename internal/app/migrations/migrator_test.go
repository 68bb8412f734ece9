package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("sql/002_add_index_on_x.sql"))
	assert.Equal(t, "bare.sql", Version("bare.sql"))
}

func TestPending_SortsSQLFiles(t *testing.T) {
	files := fstest.MapFS{
		"002_b.sql":  {Data: []byte("SELECT 2;")},
		"001_a.sql":  {Data: []byte("SELECT 1;")},
		"README.md":  {Data: []byte("notes")},
		"nested/003": {Data: []byte("ignored")},
	}

	m := NewMigrator(nil, files, zerolog.Nop())
	pending, err := m.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, pending)
}

func TestEmbeddedMigrations(t *testing.T) {
	content, err := fs.ReadFile(Files(), "001_init.sql")
	require.NoError(t, err)

	schema := string(content)
	for _, constraint := range []string{
		"users_email_key",
		"reactions_user_review_emoji_key",
		"bookmarks_pkey",
		"votes_user_poll_key",
	} {
		assert.Contains(t, schema, constraint)
	}
}
