package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strandtui/strand/internal/thread"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFixture(t, "thread.json", `{
		"focus": "B",
		"messages": [
			{"id": "A", "author": "ann", "body": "root"},
			{"id": "B", "author": "ben", "body": "reply", "in_reply_to": "A"}
		]
	}`)

	fx, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "B", fx.Focus)
	require.Len(t, fx.Messages, 2)
	require.Equal(t, "A", fx.Messages[1].InReplyTo)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFixture(t, "thread.yaml", strings.TrimSpace(`
focus: A
messages:
  - id: A
    author: ann
    body: root
    replies: [B]
  - id: B
    author: ben
    in_reply_to: A
`))

	fx, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "A", fx.Focus)
	require.Equal(t, []string{"B"}, fx.Messages[0].Replies)
}

func TestLoad_DefaultsFocusToFirstMessage(t *testing.T) {
	path := writeFixture(t, "thread.json", `{"messages": [{"id": "A"}, {"id": "B"}]}`)

	fx, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "A", fx.Focus)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown extension", "thread.toml", "focus = 'A'", "unsupported fixture format"},
		{"empty messages", "thread.json", `{"messages": []}`, "no messages"},
		{"missing id", "thread.json", `{"messages": [{"author": "ann"}]}`, "has no id"},
		{"duplicate id", "thread.json", `{"messages": [{"id": "A"}, {"id": "A"}]}`, "duplicate message id"},
		{"unknown focus", "thread.json", `{"focus": "Z", "messages": [{"id": "A"}]}`, "not in messages"},
		{"bad json", "thread.json", `{`, "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestNewPendingReply(t *testing.T) {
	msg := NewPendingReply("C", "me", "on my way")

	require.Equal(t, "C", msg.InReplyTo)
	require.Equal(t, "me", msg.Author)
	require.True(t, strings.HasPrefix(msg.ID, thread.PendingIDPrefix))
	require.Equal(t, thread.KindPending, thread.Classify(msg.ID).Kind)
	require.False(t, msg.CreatedAt.IsZero())

	other := NewPendingReply("C", "me", "again")
	require.NotEqual(t, msg.ID, other.ID)
}
