package store

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/thread"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is a Store backed by a local sqlite thread cache. All reads go
// through an in-memory mirror hydrated at open time; mutations write through
// to the database so a thread survives restarts.
type SQLiteStore struct {
	db  *sql.DB
	mem *MemoryStore
}

// OpenSQLite opens (creating if necessary) a thread cache database, applies
// pending migrations, and hydrates the in-memory mirror.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening thread cache: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating thread cache: %w", err)
	}

	s := &SQLiteStore{db: db, mem: NewMemoryStore()}
	if err := s.hydrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hydrating thread cache: %w", err)
	}

	return s, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func (s *SQLiteStore) hydrate() error {
	rows, err := s.db.Query(`SELECT id, author, body, created_at, in_reply_to, reply_count FROM messages`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Author, &msg.Body, &msg.CreatedAt, &msg.InReplyTo, &msg.ReplyCount); err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	replyRows, err := s.db.Query(`SELECT parent_id, child_id FROM replies ORDER BY parent_id, position`)
	if err != nil {
		return err
	}
	defer func() { _ = replyRows.Close() }()

	children := make(map[string][]string)
	for replyRows.Next() {
		var parentID, childID string
		if err := replyRows.Scan(&parentID, &childID); err != nil {
			return err
		}
		children[parentID] = append(children[parentID], childID)
	}
	if err := replyRows.Err(); err != nil {
		return err
	}

	for i := range msgs {
		msgs[i].Replies = children[msgs[i].ID]
	}

	s.mem.Seed(msgs)
	log.Info(log.CatStore, "hydrated thread cache", "messages", len(msgs))
	return nil
}

// Snapshot returns an immutable view of the current relation tables.
func (s *SQLiteStore) Snapshot() thread.Relations {
	return s.mem.Snapshot()
}

// Message retrieves display metadata for an id.
func (s *SQLiteStore) Message(id string) (*Message, error) {
	return s.mem.Message(id)
}

// Entry returns the classified entry for an id, if known.
func (s *SQLiteStore) Entry(id string) (thread.Entry, bool) {
	return s.mem.Entry(id)
}

// Has reports whether the store knows the id.
func (s *SQLiteStore) Has(id string) bool {
	return s.mem.Has(id)
}

// ApplyPage appends fetched descendants and persists them.
func (s *SQLiteStore) ApplyPage(parentID string, children []Message) (int64, error) {
	version, err := s.mem.ApplyPage(parentID, children)
	if err != nil {
		return version, err
	}

	for i := range children {
		child := children[i]
		if child.InReplyTo == "" {
			child.InReplyTo = parentID
		}
		if err := s.persistMessage(child); err != nil {
			return version, err
		}
		if err := s.persistReply(child.InReplyTo, child.ID); err != nil {
			return version, err
		}
	}
	return version, nil
}

// Add inserts a single message and persists it.
func (s *SQLiteStore) Add(msg Message) (int64, error) {
	version, err := s.mem.Add(msg)
	if err != nil {
		return version, err
	}

	if err := s.persistMessage(msg); err != nil {
		return version, err
	}
	if msg.InReplyTo != "" {
		if err := s.persistReply(msg.InReplyTo, msg.ID); err != nil {
			return version, err
		}
	}
	return version, nil
}

// Import bulk-loads fixture messages into the cache.
func (s *SQLiteStore) Import(msgs []Message) error {
	for i := range msgs {
		if err := s.persistMessage(msgs[i]); err != nil {
			return err
		}
		for _, childID := range msgs[i].Replies {
			if err := s.persistReply(msgs[i].ID, childID); err != nil {
				return err
			}
		}
	}

	s.mem.Seed(msgs)
	return nil
}

func (s *SQLiteStore) persistMessage(msg Message) error {
	_, err := s.db.Exec(`
		INSERT INTO messages (id, author, body, created_at, in_reply_to, reply_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			author = excluded.author,
			body = excluded.body,
			reply_count = excluded.reply_count`,
		msg.ID, msg.Author, msg.Body, msg.CreatedAt, msg.InReplyTo, msg.ReplyCount)
	if err != nil {
		return fmt.Errorf("persisting message %s: %w", msg.ID, err)
	}
	return nil
}

func (s *SQLiteStore) persistReply(parentID, childID string) error {
	_, err := s.db.Exec(`
		INSERT INTO replies (parent_id, child_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM replies WHERE parent_id = ?))
		ON CONFLICT (parent_id, child_id) DO NOTHING`,
		parentID, childID, parentID)
	if err != nil {
		return fmt.Errorf("persisting reply edge %s -> %s: %w", parentID, childID, err)
	}
	return nil
}

// Messages returns a copy of every cached message. Order is unspecified.
func (s *SQLiteStore) Messages() []Message {
	return s.mem.Messages()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
