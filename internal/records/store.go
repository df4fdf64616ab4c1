package records

import (
	"database/sql"
	"fmt"
	"strings"
)

// MaxListLimit caps every list query; clients cannot page past it.
const MaxListLimit = 50

// Store persists the four record kinds with ownership enforcement: every
// query it issues is scoped by user_id, so one user's records are
// structurally unreachable from another user's calls.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert validates the body for the kind and inserts a new record owned by
// userID. The owner always comes from the authenticated session, never from
// the body. Returns a *validation.Error on bad input (before any SQL).
func (s *Store) Insert(userID int64, kind *Kind, body map[string]interface{}) (int64, error) {
	values, err := kind.Validate(body)
	if err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(kind.Columns)), ", ")
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, %s) VALUES (?, %s)",
		kind.Table, strings.Join(kind.Columns, ", "), placeholders,
	)

	args := append([]interface{}{userID}, values...)
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List returns up to limit records owned by userID, most recent first per
// the kind's ordering. limit is clamped to MaxListLimit.
func (s *Store) List(userID int64, kind *Kind, limit int) ([]interface{}, error) {
	if limit < 1 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE user_id = ? ORDER BY %s LIMIT ?",
		kind.SelectColumns, kind.Table, kind.OrderBy,
	)

	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []interface{}{}
	for rows.Next() {
		item, err := kind.Scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes the record only if userID owns it and returns the rows
// affected. Zero rows means absent or not owned; callers must not
// distinguish the two.
func (s *Store) Delete(userID int64, kind *Kind, recordID int64) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", kind.Table)

	result, err := s.db.Exec(query, recordID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
