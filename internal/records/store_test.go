package records

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/yourorg/healthflow/internal/validation"
)

func TestInsertOwnerComesFromCaller(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO workouts (user_id, type, duration, intensity, calories_burned, notes, date) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)).
		WithArgs(int64(5), "run", int64(30), "high", int64(0), nil, "2024-01-01").
		WillReturnResult(sqlmock.NewResult(12, 1))

	// Body tries to claim another owner; the column list has no user_id
	// slot for it, so it is simply ignored
	id, err := store.Insert(5, Lookup("workouts"), map[string]interface{}{
		"type":      "run",
		"duration":  float64(30),
		"intensity": "high",
		"date":      "2024-01-01",
		"user_id":   float64(999),
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 12 {
		t.Errorf("Expected id 12, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertValidatesBeforeAnySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	// No expectations registered: any SQL would fail the test
	_, err = store.Insert(5, Lookup("workouts"), map[string]interface{}{"type": "run"})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if _, ok := err.(*validation.Error); !ok {
		t.Errorf("Expected *validation.Error, got %T", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	columns := []string{"id", "user_id", "type", "duration", "intensity", "calories_burned", "notes", "date", "created_at"}
	mock.ExpectQuery("SELECT .+ FROM workouts WHERE user_id = \\? ORDER BY date DESC, created_at DESC LIMIT \\?").
		WithArgs(int64(5), 50).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(12, 5, "run", 30, "high", 250, nil, "2024-01-02", time.Now()).
			AddRow(11, 5, "swim", 45, "medium", 300, "laps", "2024-01-01", time.Now()))

	items, err := store.List(5, Lookup("workouts"), 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	columns := []string{"id", "user_id", "type", "duration", "intensity", "calories_burned", "notes", "date", "created_at"}
	for _, requested := range []int{500, 0, -3} {
		mock.ExpectQuery("SELECT .+ FROM workouts").
			WithArgs(int64(5), MaxListLimit).
			WillReturnRows(sqlmock.NewRows(columns))

		if _, err := store.List(5, Lookup("workouts"), requested); err != nil {
			t.Fatalf("List(limit=%d): %v", requested, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMedicationOrdering(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	// Active medications surface first
	columns := []string{"id", "user_id", "name", "dosage", "frequency", "purpose", "start_date", "end_date", "is_active", "created_at"}
	mock.ExpectQuery("SELECT .+ FROM medications WHERE user_id = \\? ORDER BY is_active DESC, start_date DESC LIMIT \\?").
		WithArgs(int64(5), 50).
		WillReturnRows(sqlmock.NewRows(columns))

	if _, err := store.List(5, Lookup("medications"), 50); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteNonOwnedIsZeroRowNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workouts WHERE id = ? AND user_id = ?")).
		WithArgs(int64(12), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// User 6 tries to delete user 5's record: zero rows, no error
	rows, err := store.Delete(6, Lookup("workouts"), 12)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rows != 0 {
		t.Errorf("Expected 0 rows affected, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
