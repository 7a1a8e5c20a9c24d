package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	pkgch "MarketPulse/pkg/clickhouse"
	applogger "MarketPulse/pkg/logger"
)

// CHSignalStore implements SignalRecorder backed by ClickHouse. Batches are
// append-only; one row per signal, ordered by seq within a batch, with the
// overall signal last.
type CHSignalStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

var _ domrepo.SignalRecorder = (*CHSignalStore)(nil)

func NewCHSignalStore(ch *pkgch.Client) *CHSignalStore {
	return &CHSignalStore{client: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSignalStore) SetLogger(l *applogger.Logger) { s.l = l }

var signalSchema = []string{
	`CREATE DATABASE IF NOT EXISTS marketpulse`,
	`CREATE TABLE IF NOT EXISTS marketpulse.signal_history (
        ticker          LowCardinality(String),
        seq             UInt8,
        is_overall      UInt8,
        signal_type     LowCardinality(String),
        confidence      Float64,
        technical_score Nullable(Float64),
        sentiment_score Nullable(Float64),
        volume_score    Nullable(Float64),
        reasoning       String,
        generated_at    DateTime64(3),
        recorded_at     DateTime64(3) DEFAULT now64(3)
    )
    ENGINE = MergeTree()
    PARTITION BY toYYYYMM(generated_at)
    ORDER BY (ticker, generated_at, seq)
    TTL toDateTime(generated_at) + INTERVAL 90 DAY`,
}

// Init ensures the database and history table exist (idempotent).
func (s *CHSignalStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, signalSchema)
}

// Record appends one signal batch for a ticker.
func (s *CHSignalStore) Record(ctx context.Context, ticker string, signals []models.AISignal) error {
	if len(signals) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO marketpulse.signal_history
            (ticker, seq, is_overall, signal_type, confidence,
             technical_score, sentiment_score, volume_score, reasoning, generated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, sig := range signals {
		overall := uint8(0)
		if i == len(signals)-1 {
			overall = 1
		}
		if _, err := stmt.ExecContext(ctx,
			ticker, uint8(i), overall, sig.SignalType, sig.Confidence,
			nullable(sig.TechnicalScore), nullable(sig.SentimentScore), nullable(sig.VolumeScore),
			strings.Join(sig.Reasoning, "\n"), sig.GeneratedAt,
		); err != nil {
			_ = tx.Rollback()
			if s.l != nil {
				s.l.Error("clickhouse record_signals insert error",
					applogger.String("ticker", ticker),
					applogger.Int("seq", i),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert signal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse record_signals ok",
			applogger.String("ticker", ticker),
			applogger.Int("rows", len(signals)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// History returns the most recent batches for a ticker, newest first, up to
// limit rows.
func (s *CHSignalStore) History(ctx context.Context, ticker string, limit int) ([]models.AISignal, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, `
        SELECT signal_type, confidence, technical_score, sentiment_score,
               volume_score, reasoning, generated_at
        FROM marketpulse.signal_history
        WHERE ticker = ?
        ORDER BY generated_at DESC, seq ASC
        LIMIT ?
    `, ticker, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse signal_history query error",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("signal history: %w", err)
	}
	defer rows.Close()

	out := make([]models.AISignal, 0, limit)
	for rows.Next() {
		var (
			sig       models.AISignal
			reasoning string
		)
		if err := rows.Scan(&sig.SignalType, &sig.Confidence,
			&sig.TechnicalScore, &sig.SentimentScore, &sig.VolumeScore,
			&reasoning, &sig.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		if reasoning != "" {
			sig.Reasoning = strings.Split(reasoning, "\n")
		}
		out = append(out, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse signal_history ok",
			applogger.String("ticker", ticker),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *CHSignalStore) Close() error { return s.client.Close() }

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
