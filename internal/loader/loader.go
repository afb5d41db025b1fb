// Package loader reads thread fixtures from JSON or YAML files and mints
// locally-authored pending replies.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/store"
	"github.com/strandtui/strand/internal/thread"
)

// Fixture is a thread file: a set of messages and the id to focus first.
type Fixture struct {
	Focus    string          `json:"focus" yaml:"focus"`
	Messages []store.Message `json:"messages" yaml:"messages"`
}

// Load reads a fixture from path, choosing the codec by extension
// (.json, .yaml, .yml).
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	var fx Fixture
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &fx); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format %q (want .json, .yaml, or .yml)", ext)
	}

	if err := fx.validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}

	log.Info(log.CatLoader, "loaded fixture", "path", path, "messages", len(fx.Messages), "focus", fx.Focus)
	return &fx, nil
}

func (fx *Fixture) validate() error {
	if len(fx.Messages) == 0 {
		return fmt.Errorf("no messages")
	}

	seen := make(map[string]bool, len(fx.Messages))
	for i := range fx.Messages {
		id := fx.Messages[i].ID
		if id == "" {
			return fmt.Errorf("message %d has no id", i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate message id %q", id)
		}
		seen[id] = true
	}

	if fx.Focus == "" {
		fx.Focus = fx.Messages[0].ID
	} else if !seen[fx.Focus] {
		return fmt.Errorf("focus id %q not in messages", fx.Focus)
	}
	return nil
}

// NewPendingReply mints an optimistic local reply to parentID. Its id carries
// the pending prefix so classification marks it as not yet confirmed.
func NewPendingReply(parentID, author, body string) store.Message {
	return store.Message{
		ID:        thread.PendingIDPrefix + uuid.NewString(),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
		InReplyTo: parentID,
	}
}
