package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/0xliangjiang/irys-nft-mint/packages/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	timestamp     TEXT NOT NULL,
	network       TEXT NOT NULL,
	contract      TEXT NOT NULL,
	total_count   INTEGER NOT NULL,
	success_count INTEGER NOT NULL,
	failure_count INTEGER NOT NULL,
	success_rate  TEXT NOT NULL,
	report_path   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id       TEXT NOT NULL,
	wallet_index INTEGER NOT NULL,
	address      TEXT NOT NULL,
	success      INTEGER NOT NULL,
	message      TEXT NOT NULL,
	tx_hash      TEXT,
	PRIMARY KEY (run_id, wallet_index)
);`

// Store keeps a local log of past batch runs. It is written after the
// report file; store failures never affect the batch outcome.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one recorded batch.
type Run struct {
	RunID       string
	Timestamp   string
	Network     string
	Contract    string
	Total       int
	Success     int
	Failure     int
	SuccessRate string
	ReportPath  string
}

// RecordRun stores the report and its per-wallet results in one transaction.
func (s *Store) RecordRun(rep *report.BatchReport, reportPath string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, timestamp, network, contract, total_count, success_count, failure_count, success_rate, report_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.Timestamp, rep.Network, rep.ContractAddress,
		rep.TotalCount, rep.SuccessCount, rep.FailureCount, rep.SuccessRate, reportPath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, r := range rep.Results {
		_, err := tx.Exec(
			`INSERT INTO results (run_id, wallet_index, address, success, message, tx_hash)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rep.RunID, r.WalletIndex, r.Address, r.Success, r.Message, r.TxHash,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for wallet %d: %w", r.WalletIndex, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, timestamp, network, contract, total_count, success_count, failure_count, success_rate, report_path
		 FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Timestamp, &r.Network, &r.Contract,
			&r.Total, &r.Success, &r.Failure, &r.SuccessRate, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the per-wallet outcomes recorded for a run.
func (s *Store) Results(runID string) ([]report.MintResult, error) {
	rows, err := s.db.Query(
		`SELECT wallet_index, address, success, message, tx_hash
		 FROM results WHERE run_id = ? ORDER BY wallet_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []report.MintResult
	for rows.Next() {
		var r report.MintResult
		var txHash sql.NullString
		if err := rows.Scan(&r.WalletIndex, &r.Address, &r.Success, &r.Message, &txHash); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.TxHash = txHash.String
		results = append(results, r)
	}
	return results, rows.Err()
}
