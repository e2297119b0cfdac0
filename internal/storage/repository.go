// Package storage is the SQLite snapshot backend. Each save replaces the
// whole ledger inside one transaction, keeping the same whole-document
// semantics as the JSON file store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"maasertrack/internal/core"
	"maasertrack/internal/persist"

	_ "modernc.org/sqlite"
)

const (
	variantPersonal = "personal"
	variantBusiness = "business"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
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

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Personal exposes the personal snapshot port backed by this repository.
func (r *Repository) Personal() persist.PersonalStore {
	return personalRepo{db: r.db}
}

// Business exposes the business snapshot port backed by this repository.
func (r *Repository) Business() persist.BusinessStore {
	return businessRepo{db: r.db}
}

type personalRepo struct {
	db *sql.DB
}

func (p personalRepo) Load(ctx context.Context) (persist.PersonalSnapshot, bool, error) {
	var snap persist.PersonalSnapshot

	present, err := snapshotPresent(ctx, p.db, variantPersonal)
	if err != nil || !present {
		return snap, false, err
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, type, amount_cents, date, time, memo, account_id
		 FROM transactions ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			t       core.Transaction
			kind    string
			cents   int64
			account sql.NullString
		)
		if err := rows.Scan(&t.ID, &kind, &cents, &t.Date, &t.Time, &t.Memo, &account); err != nil {
			return snap, false, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TxType(kind)
		t.Amount = core.Money{Cents: cents}
		if account.Valid {
			t.AccountID = &account.String
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate transactions: %w", err)
	}

	accRows, err := p.db.QueryContext(ctx, `SELECT id, name FROM accounts ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("query accounts: %w", err)
	}
	defer accRows.Close()
	for accRows.Next() {
		var a core.BankAccount
		if err := accRows.Scan(&a.ID, &a.Name); err != nil {
			return snap, false, fmt.Errorf("scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	if err := accRows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate accounts: %w", err)
	}

	verRows, err := p.db.QueryContext(ctx, `SELECT tx_id FROM verified_transactions ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("query verified transactions: %w", err)
	}
	defer verRows.Close()
	for verRows.Next() {
		var id string
		if err := verRows.Scan(&id); err != nil {
			return snap, false, fmt.Errorf("scan verified transaction: %w", err)
		}
		snap.Verified = append(snap.Verified, id)
	}
	if err := verRows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate verified transactions: %w", err)
	}

	return snap, true, nil
}

func (p personalRepo) Save(ctx context.Context, snap persist.PersonalSnapshot) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin personal save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "accounts", "verified_transactions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, t := range snap.Transactions {
		var account sql.NullString
		if t.AccountID != nil {
			account = sql.NullString{String: *t.AccountID, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (position, id, type, amount_cents, date, time, memo, account_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, t.ID, string(t.Type), t.Amount.Cents, t.Date, t.Time, t.Memo, account)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}
	for i, a := range snap.Accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (position, id, name) VALUES (?, ?, ?)`, i, a.ID, a.Name); err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
	}
	for i, id := range snap.Verified {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO verified_transactions (position, tx_id) VALUES (?, ?)`, i, id); err != nil {
			return fmt.Errorf("insert verified transaction %s: %w", id, err)
		}
	}

	if err := markSaved(ctx, tx, variantPersonal); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit personal save: %w", err)
	}
	return nil
}

type businessRepo struct {
	db *sql.DB
}

func (b businessRepo) Load(ctx context.Context) (persist.BusinessSnapshot, bool, error) {
	var snap persist.BusinessSnapshot

	present, err := snapshotPresent(ctx, b.db, variantBusiness)
	if err != nil || !present {
		return snap, false, err
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, amount_cents, date, memo, status, account_id
		 FROM business_transactions ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("query business transactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			t       core.BusinessTransaction
			cents   int64
			status  string
			account sql.NullString
		)
		if err := rows.Scan(&t.ID, &cents, &t.Date, &t.Memo, &status, &account); err != nil {
			return snap, false, fmt.Errorf("scan business transaction: %w", err)
		}
		t.Amount = core.Money{Cents: cents}
		t.Status = core.TxStatus(status)
		if account.Valid {
			t.AccountID = &account.String
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate business transactions: %w", err)
	}

	return snap, true, nil
}

func (b businessRepo) Save(ctx context.Context, snap persist.BusinessSnapshot) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin business save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_transactions`); err != nil {
		return fmt.Errorf("clear business_transactions: %w", err)
	}
	for i, t := range snap.Transactions {
		var account sql.NullString
		if t.AccountID != nil {
			account = sql.NullString{String: *t.AccountID, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO business_transactions (position, id, amount_cents, date, memo, status, account_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, t.ID, t.Amount.Cents, t.Date, t.Memo, string(t.Status), account)
		if err != nil {
			return fmt.Errorf("insert business transaction %s: %w", t.ID, err)
		}
	}

	if err := markSaved(ctx, tx, variantBusiness); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit business save: %w", err)
	}
	return nil
}

// snapshotPresent distinguishes "never saved" from "saved empty", matching
// the file store's absent-file semantics.
func snapshotPresent(ctx context.Context, db *sql.DB, variant string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshot_state WHERE variant = ?`, variant).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check snapshot state: %w", err)
	}
	return count > 0, nil
}

func markSaved(ctx context.Context, tx *sql.Tx, variant string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_state (variant, saved_at) VALUES (?, ?)
		 ON CONFLICT (variant) DO UPDATE SET saved_at = excluded.saved_at`,
		variant, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark snapshot saved: %w", err)
	}
	return nil
}
