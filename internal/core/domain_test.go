package core

import "testing"

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Type: TypeIncome, Amount: Money{Cents: 100}, Date: "2024-01-01", Time: "09:00"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "bogus", Date: "2024-01-01", Time: "09:00"},
		{Type: TypeIncome, Date: "", Time: "09:00"},
		{Type: TypeMaaser, Date: "2024-01-01", Time: ""},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBusinessTransactionValidate(t *testing.T) {
	good := BusinessTransaction{Amount: Money{Cents: 100}, Date: "2024-01-01", Status: StatusPending}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []BusinessTransaction{
		{Date: "", Status: StatusPending},
		{Date: "2024-01-01", Status: "done"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBankAccountValidate(t *testing.T) {
	if err := (BankAccount{ID: "a", Name: "Checking"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (BankAccount{ID: "a", Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
