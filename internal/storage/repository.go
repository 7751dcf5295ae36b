package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"farmbook/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, date, kind, description, amount, payer, category, sub_category, source, notes`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var kind string
	err := row.Scan(&t.ID, &t.Date, &kind, &t.Description, &t.Amount,
		&t.Payer, &t.Category, &t.SubCategory, &t.Source, &t.Notes)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.Kind(kind)
	return t, nil
}

// CreateTransaction inserts a single transaction.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, string(t.Kind), t.Description, t.Amount,
		t.Payer, t.Category, t.SubCategory, t.Source, t.Notes)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"description", t.Description,
		"amount", t.Amount,
		"date", t.Date)
	return nil
}

// CreateTransactions inserts a batch atomically. Either every record lands
// or none do.
func (r *SQLiteRepository) CreateTransactions(ctx context.Context, records []core.Transaction) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range records {
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Date, string(t.Kind), t.Description, t.Amount,
			t.Payer, t.Category, t.SubCategory, t.Source, t.Notes); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}

	slog.InfoContext(ctx, "Transaction batch saved to SQLite", "count", len(records))
	return nil
}

// ListTransactions returns every stored record in insertion order, including
// ones that a later validation pass may drop.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, kind = ?, description = ?, amount = ?, payer = ?,
		     category = ?, sub_category = ?, source = ?, notes = ?
		 WHERE id = ?`,
		t.Date, string(t.Kind), t.Description, t.Amount, t.Payer,
		t.Category, t.SubCategory, t.Source, t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", t.ID, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return requireRow(res)
}

const animalColumns = `id, tag, name, species, breed, sex, birth_date, status, notes`

func (r *SQLiteRepository) CreateAnimal(ctx context.Context, a core.Animal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO animals (`+animalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Tag, a.Name, a.Species, a.Breed, a.Sex, a.BirthDate, a.Status, a.Notes)
	if err != nil {
		return fmt.Errorf("create animal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListAnimals(ctx context.Context) ([]core.Animal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+animalColumns+` FROM animals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()

	var animals []core.Animal
	for rows.Next() {
		var a core.Animal
		if err := rows.Scan(&a.ID, &a.Tag, &a.Name, &a.Species, &a.Breed,
			&a.Sex, &a.BirthDate, &a.Status, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animals: %w", err)
	}
	return animals, nil
}

func (r *SQLiteRepository) GetAnimal(ctx context.Context, id string) (core.Animal, error) {
	var a core.Animal
	err := r.db.QueryRowContext(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE id = ?`, id).
		Scan(&a.ID, &a.Tag, &a.Name, &a.Species, &a.Breed,
			&a.Sex, &a.BirthDate, &a.Status, &a.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Animal{}, core.ErrNotFound
	}
	if err != nil {
		return core.Animal{}, fmt.Errorf("get animal %s: %w", id, err)
	}
	return a, nil
}

func (r *SQLiteRepository) UpdateAnimal(ctx context.Context, a core.Animal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE animals
		 SET tag = ?, name = ?, species = ?, breed = ?, sex = ?,
		     birth_date = ?, status = ?, notes = ?
		 WHERE id = ?`,
		a.Tag, a.Name, a.Species, a.Breed, a.Sex,
		a.BirthDate, a.Status, a.Notes, a.ID)
	if err != nil {
		return fmt.Errorf("update animal %s: %w", a.ID, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteAnimal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete animal %s: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) AddAnimalEvent(ctx context.Context, e core.AnimalEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO animal_events (id, animal_id, type, date, value, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.AnimalID, string(e.Type), e.Date, e.Value, e.Notes)
	if err != nil {
		return fmt.Errorf("add animal event: %w", err)
	}
	return nil
}

// ListAnimalEvents returns every event for one animal, newest first.
func (r *SQLiteRepository) ListAnimalEvents(ctx context.Context, animalID string) ([]core.AnimalEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, animal_id, type, date, value, notes
		 FROM animal_events WHERE animal_id = ?
		 ORDER BY date DESC, created_at DESC`, animalID)
	if err != nil {
		return nil, fmt.Errorf("list animal events: %w", err)
	}
	defer rows.Close()

	var events []core.AnimalEvent
	for rows.Next() {
		var e core.AnimalEvent
		var typ string
		if err := rows.Scan(&e.ID, &e.AnimalID, &typ, &e.Date, &e.Value, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan animal event: %w", err)
		}
		e.Type = core.EventType(typ)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animal events: %w", err)
	}
	return events, nil
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, t core.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, details, due_date, done) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Details, t.DueDate, boolToInt(t.Done))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, t core.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, details = ?, due_date = ?, done = ? WHERE id = ?`,
		t.Title, t.Details, t.DueDate, boolToInt(t.Done), t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, details, due_date, done FROM tasks ORDER BY due_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// DueTasks returns open tasks whose due date is on or before the given
// calendar date.
func (r *SQLiteRepository) DueTasks(ctx context.Context, today string) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, details, due_date, done
		 FROM tasks
		 WHERE done = 0 AND due_date != '' AND due_date <= ?
		 ORDER BY due_date`, today)
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteRepository) MarkTaskDone(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark task done %s: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return requireRow(res)
}

func scanTasks(rows *sql.Rows) ([]core.Task, error) {
	var tasks []core.Task
	for rows.Next() {
		var t core.Task
		var done int
		if err := rows.Scan(&t.ID, &t.Title, &t.Details, &t.DueDate, &done); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Done = done != 0
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
