package store

import (
	"sync"

	"github.com/google/uuid"

	"maasertrack/internal/core"
	"maasertrack/internal/persist"
)

// Business is the mutex-guarded business expense ledger. It has no verified
// list and no accounts of its own; accounts are read from the personal side.
type Business struct {
	mu  sync.RWMutex
	txs []core.BusinessTransaction
}

func NewBusiness() *Business {
	return &Business{}
}

func (s *Business) LoadSnapshot(snap persist.BusinessSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.BusinessTransaction(nil), snap.Transactions...)
}

func (s *Business) Snapshot() persist.BusinessSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return persist.BusinessSnapshot{
		Transactions: append([]core.BusinessTransaction(nil), s.txs...),
	}
}

func (s *Business) List() []core.BusinessTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.BusinessTransaction(nil), s.txs...)
}

func (s *Business) Get(id string) (core.BusinessTransaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txs {
		if t.ID == id {
			return t, true
		}
	}
	return core.BusinessTransaction{}, false
}

// Add validates and appends an expense. A missing status defaults to pending
// before validation runs.
func (s *Business) Add(tx core.BusinessTransaction) (core.BusinessTransaction, error) {
	if tx.Status == "" {
		tx.Status = core.StatusPending
	}
	if err := tx.Validate(); err != nil {
		return core.BusinessTransaction{}, err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *Business) Update(tx core.BusinessTransaction) error {
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

func (s *Business) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txs {
		if t.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ToggleStatus flips an expense between pending and reimbursed and returns
// the new status.
func (s *Business) ToggleStatus(id string) (core.TxStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txs {
		if t.ID == id {
			if t.Status == core.StatusPending {
				s.txs[i].Status = core.StatusReimbursed
			} else {
				s.txs[i].Status = core.StatusPending
			}
			return s.txs[i].Status, nil
		}
	}
	return "", ErrNotFound
}

// Append adds already validated records, used by import confirmation.
func (s *Business) Append(txs []core.BusinessTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, txs...)
}
