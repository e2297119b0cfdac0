// Package store holds the in-memory entity stores. They are the source of
// truth for a running session; persistence is a write-through behind them,
// owned by the service layer.
package store

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"maasertrack/internal/core"
	"maasertrack/internal/persist"
)

// ErrNotFound is returned when an id does not match any stored record.
var ErrNotFound = errors.New("record not found")

// Personal is the mutex-guarded personal ledger: transactions, bank accounts
// and the verified-duplicate id list.
type Personal struct {
	mu       sync.RWMutex
	txs      []core.Transaction
	accounts []core.BankAccount
	verified []string
}

func NewPersonal() *Personal {
	return &Personal{}
}

// LoadSnapshot replaces the store contents wholesale.
func (s *Personal) LoadSnapshot(snap persist.PersonalSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.Transaction(nil), snap.Transactions...)
	s.accounts = append([]core.BankAccount(nil), snap.Accounts...)
	s.verified = append([]string(nil), snap.Verified...)
}

// Snapshot copies the store contents into a persistable document.
func (s *Personal) Snapshot() persist.PersonalSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return persist.PersonalSnapshot{
		Transactions: append([]core.Transaction(nil), s.txs...),
		Accounts:     append([]core.BankAccount(nil), s.accounts...),
		Verified:     append([]string(nil), s.verified...),
	}
}

// List returns a copy of all transactions in insertion order.
func (s *Personal) List() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Verified returns a copy of the verified-duplicate id list.
func (s *Personal) Verified() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.verified...)
}

func (s *Personal) Get(id string) (core.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txs {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Add validates and appends a transaction, assigning an id when absent.
func (s *Personal) Add(tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return tx, nil
}

// Update replaces the stored transaction with the same id.
func (s *Personal) Update(tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txs {
		if t.ID == tx.ID {
			s.txs[i] = tx
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the transaction and purges its id from the verified list.
func (s *Personal) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, t := range s.txs {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.txs = append(s.txs[:idx], s.txs[idx+1:]...)
	kept := s.verified[:0]
	for _, v := range s.verified {
		if v != id {
			kept = append(kept, v)
		}
	}
	s.verified = kept
	return nil
}

// ToggleVerified flips the duplicate-acknowledged flag for a transaction and
// returns the new state.
func (s *Personal) ToggleVerified(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, t := range s.txs {
		if t.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false, ErrNotFound
	}
	for i, v := range s.verified {
		if v == id {
			s.verified = append(s.verified[:i], s.verified[i+1:]...)
			return false, nil
		}
	}
	s.verified = append(s.verified, id)
	return true, nil
}

// Append adds already validated records, used by import confirmation. Records
// keep the ids assigned at preview time.
func (s *Personal) Append(txs []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, txs...)
}

// Accounts returns a copy of the bank account list.
func (s *Personal) Accounts() []core.BankAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.BankAccount(nil), s.accounts...)
}

// AddAccount creates a named bank account.
func (s *Personal) AddAccount(name string) (core.BankAccount, error) {
	acc := core.BankAccount{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := acc.Validate(); err != nil {
		return core.BankAccount{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, acc)
	return acc, nil
}

// DeleteAccount removes an account. Transactions referencing it keep their
// account id; there is no cascade.
func (s *Personal) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
