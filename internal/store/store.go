package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"streakboard/internal/habit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("document not found")

// Event types recorded in the journal.
const (
	EventCreated  = "CREATED"
	EventReplaced = "REPLACED"
)

type Store struct {
	DB *gorm.DB
}

// Create stores the initial document for a new user.
func (s *Store) Create(ctx context.Context, userID uint64, doc *habit.Document) error {
	habit.Normalize(doc)
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := UserDocument{UserID: userID, Data: b, Version: 1}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return insertEvent(tx, userID, EventCreated, topLevelKeys(b), row.Version)
	})
}

// Load reads the stored document as-is.
func (s *Store) Load(ctx context.Context, userID uint64) (*habit.Document, error) {
	var row UserDocument
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(row.Data)
}

// Update runs fn against the locked document and writes the result back in
// the same transaction. An error from fn aborts without writing. When fn
// leaves the document unchanged nothing is written or journaled.
func (s *Store) Update(ctx context.Context, userID uint64, event string, fn func(doc *habit.Document) error) (*habit.Document, error) {
	var out *habit.Document

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row UserDocument
		if err := q.Where("user_id = ?", userID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		doc, err := decode(row.Data)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}

		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		out = doc

		fields := changedKeys(row.Data, b)
		if len(fields) == 0 {
			return nil
		}

		version := row.Version + 1
		if err := tx.Model(&UserDocument{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"data":    b,
				"version": version,
			}).Error; err != nil {
			return err
		}
		return insertEvent(tx, userID, event, fields, version)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Replace overwrites the document with one computed by a client. There is no
// version check; the last writer wins. Server-only fields are carried over
// from the stored copy.
func (s *Store) Replace(ctx context.Context, userID uint64, incoming *habit.Document) (*habit.Document, error) {
	return s.Update(ctx, userID, EventReplaced, func(doc *habit.Document) error {
		next := incoming.Clone()
		next.QuoteQueue = doc.QuoteQueue
		next.QueuePosition = doc.QueuePosition
		habit.Normalize(next)
		*doc = *next
		return nil
	})
}

// Journal returns the most recent events for a user, newest first.
func (s *Store) Journal(ctx context.Context, userID uint64, limit int) ([]DocumentEvent, error) {
	var out []DocumentEvent
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func decode(b []byte) (*habit.Document, error) {
	var doc habit.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

func insertEvent(tx *gorm.DB, userID uint64, typ string, fields []string, version uint64) error {
	ev := DocumentEvent{
		UserID:  userID,
		Type:    typ,
		Fields:  FieldList(fields),
		Version: version,
	}
	return tx.Create(&ev).Error
}

func topLevelKeys(b []byte) []string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// changedKeys compares two encoded documents key by key.
func changedKeys(before, after []byte) []string {
	var a, b map[string]json.RawMessage
	if err := json.Unmarshal(before, &a); err != nil {
		return topLevelKeys(after)
	}
	if err := json.Unmarshal(after, &b); err != nil {
		return nil
	}

	var out []string
	for k, v := range b {
		if old, ok := a[k]; !ok || !sameJSON(old, v) {
			out = append(out, k)
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// sameJSON compares decoded values. Postgres jsonb does not keep key order.
func sameJSON(a, b json.RawMessage) bool {
	var x, y any
	if json.Unmarshal(a, &x) != nil || json.Unmarshal(b, &y) != nil {
		return false
	}
	return reflect.DeepEqual(x, y)
}
