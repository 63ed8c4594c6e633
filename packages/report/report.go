package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gonum/stat"
	"github.com/google/uuid"
)

// MintResult records the outcome for a single wallet. WalletIndex is the
// 1-based position among the valid keys; exactly one result exists per key.
type MintResult struct {
	WalletIndex int    `json:"walletIndex"`
	Address     string `json:"address,omitempty"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TxHash      string `json:"txHash,omitempty"`
	Balance     string `json:"balance,omitempty"`
	ElapsedMs   int64  `json:"elapsedMs,omitempty"`
}

// Latency summarizes confirmation times of successful mints, in
// milliseconds.
type Latency struct {
	MinMs  float64 `json:"minMs"`
	MeanMs float64 `json:"meanMs"`
	P95Ms  float64 `json:"p95Ms"`
	MaxMs  float64 `json:"maxMs"`
}

// BatchReport is the JSON document written once after a batch completes.
type BatchReport struct {
	RunID           string       `json:"runId"`
	Network         string       `json:"network"`
	ChainID         uint64       `json:"chainId"`
	Timestamp       string       `json:"timestamp"`
	ContractAddress string       `json:"contractAddress"`
	TotalCount      int          `json:"totalCount"`
	SuccessCount    int          `json:"successCount"`
	FailureCount    int          `json:"failureCount"`
	SuccessRate     string       `json:"successRate"`
	Latency         *Latency     `json:"latency,omitempty"`
	Results         []MintResult `json:"results"`
}

// Build aggregates per-wallet results into a report. Result order is
// preserved. The success rate is a percentage with one decimal, without a
// percent sign, e.g. "100.0".
func Build(network string, chainID uint64, contract string, results []MintResult) *BatchReport {
	if results == nil {
		results = []MintResult{}
	}

	success := 0
	for _, r := range results {
		if r.Success {
			success++
		}
	}
	total := len(results)

	rate := 0.0
	if total > 0 {
		rate = float64(success) * 100 / float64(total)
	}

	return &BatchReport{
		RunID:           uuid.NewString(),
		Network:         network,
		ChainID:         chainID,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		ContractAddress: contract,
		TotalCount:      total,
		SuccessCount:    success,
		FailureCount:    total - success,
		SuccessRate:     fmt.Sprintf("%.1f", rate),
		Latency:         latencyStats(results),
		Results:         results,
	}
}

// latencyStats summarizes elapsed times of confirmed mints. Returns nil when
// nothing confirmed.
func latencyStats(results []MintResult) *Latency {
	var samples []float64
	for _, r := range results {
		if r.Success && r.ElapsedMs > 0 {
			samples = append(samples, float64(r.ElapsedMs))
		}
	}
	if len(samples) == 0 {
		return nil
	}
	sort.Float64s(samples)

	return &Latency{
		MinMs:  samples[0],
		MeanMs: stat.Mean(samples, nil),
		P95Ms:  stat.Quantile(0.95, stat.Empirical, samples, nil),
		MaxMs:  samples[len(samples)-1],
	}
}

// Write renders the report as indented JSON to mint_results_<unix-ms>.json
// under dir and returns the full path.
func (r *BatchReport) Write(dir string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	name := fmt.Sprintf("mint_results_%d.json", time.Now().UnixMilli())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
