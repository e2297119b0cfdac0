// Package google mirrors the ledgers to a Google spreadsheet using a
// service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"maasertrack/internal/core"
	ports "maasertrack/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	personalSheet string
	businessSheet string
}

var _ ports.LedgerMirror = (*Client)(nil)

// Options configures the spreadsheet target and the credentials source.
// Exactly one of CredentialsFile and CredentialsJSON should be set.
type Options struct {
	SpreadsheetID   string
	PersonalSheet   string
	BusinessSheet   string
	CredentialsFile string
	CredentialsJSON string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if opts.PersonalSheet == "" {
		opts.PersonalSheet = "Transactions"
	}
	if opts.BusinessSheet == "" {
		opts.BusinessSheet = "BusinessExpenses"
	}

	var option goption.ClientOption
	switch {
	case opts.CredentialsJSON != "":
		option = goption.WithCredentialsJSON([]byte(opts.CredentialsJSON))
	case opts.CredentialsFile != "":
		if _, err := os.Stat(opts.CredentialsFile); err != nil {
			return nil, fmt.Errorf("credentials file: %w", err)
		}
		option = goption.WithCredentialsFile(opts.CredentialsFile)
	default:
		return nil, errors.New("missing Google credentials")
	}

	svc, err := gsheet.NewService(ctx, option, goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		personalSheet: opts.PersonalSheet,
		businessSheet: opts.BusinessSheet,
	}, nil
}

// MirrorPersonal rewrites the personal sheet from the given transactions.
func (c *Client) MirrorPersonal(ctx context.Context, txs []core.Transaction) error {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"ID", "Type", "Amount", "Date", "Time", "Memo", "Account"})
	for _, t := range txs {
		account := ""
		if t.AccountID != nil {
			account = *t.AccountID
		}
		rows = append(rows, []any{t.ID, string(t.Type), t.Amount.String(), t.Date, t.Time, t.Memo, account})
	}
	return c.rewrite(ctx, c.personalSheet, rows)
}

// MirrorBusiness rewrites the business sheet from the given expenses.
func (c *Client) MirrorBusiness(ctx context.Context, txs []core.BusinessTransaction) error {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"ID", "Date", "Memo", "Amount", "Status"})
	for _, t := range txs {
		rows = append(rows, []any{t.ID, t.Date, t.Memo, t.Amount.String(), string(t.Status)})
	}
	return c.rewrite(ctx, c.businessSheet, rows)
}

// rewrite clears the sheet and writes the rows from A1. Clearing first keeps
// deleted records out of the mirror.
func (c *Client) rewrite(ctx context.Context, sheet string, rows [][]any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:Z", sheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheet, err)
	}

	writeRange := fmt.Sprintf("%s!A1", sheet)
	vr := &gsheet.ValueRange{Values: rows}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	return nil
}
