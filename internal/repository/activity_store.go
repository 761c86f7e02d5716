package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	pkgch "Tickfunds/pkg/clickhouse"
	applogger "Tickfunds/pkg/logger"
)

const defaultActivityTable = "activity_events"

// ActivitySchema returns the DDL for the activity table.
func ActivitySchema(table string) []string {
	if table == "" {
		table = defaultActivityTable
	}
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            id      String,
            kind    LowCardinality(String),
            subject String,
            attrs   String,
            ts      DateTime64(3)
        ) ENGINE = MergeTree
        PARTITION BY toYYYYMM(ts)
        ORDER BY (kind, subject, ts)
        TTL toDateTime(ts) + INTERVAL 90 DAY
    `, table)}
}

// ClickHouseActivityStore persists activity events to ClickHouse.
type ClickHouseActivityStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

var _ domrepo.ActivityStore = (*ClickHouseActivityStore)(nil)

func NewClickHouseActivityStore(ch *pkgch.Client, l *applogger.Logger) *ClickHouseActivityStore {
	return newActivityStore(ch.DB(), defaultActivityTable, l)
}

func newActivityStore(db *sql.DB, table string, l *applogger.Logger) *ClickHouseActivityStore {
	if l == nil {
		l = applogger.NewNop()
	}
	return &ClickHouseActivityStore{db: db, table: table, l: l}
}

func (s *ClickHouseActivityStore) Init(ctx context.Context) error {
	for i, stmt := range ActivitySchema(s.table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init activity schema %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *ClickHouseActivityStore) Store(ctx context.Context, e models.ActivityEvent) error {
	return s.StoreBatch(ctx, []models.ActivityEvent{e})
}

// StoreBatch inserts events with multi-row VALUES, chunked to bound the
// statement size. Events without a kind are skipped.
func (s *ClickHouseActivityStore) StoreBatch(ctx context.Context, events []models.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(events); start += chunkSize {
		end := start + chunkSize
		if end > len(events) {
			end = len(events)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, e := range events[start:end] {
			if e.Kind == "" {
				continue
			}
			attrs, err := encodeAttrs(e.Attributes)
			if err != nil {
				return fmt.Errorf("encode attrs for %s: %w", e.ID, err)
			}
			ts := e.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, e.ID, e.Kind, e.Subject, attrs, ts.UTC())
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (id, kind, subject, attrs, ts) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse activity insert error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
			return fmt.Errorf("insert activity: %w", err)
		}
	}
	return nil
}

// TopSubjects counts events of one kind since the given time, most frequent
// first.
func (s *ClickHouseActivityStore) TopSubjects(ctx context.Context, kind string, since time.Time, limit int) ([]models.SubjectCount, error) {
	if limit <= 0 {
		limit = 10
	}
	q := fmt.Sprintf(`
        SELECT subject, count() AS views
        FROM %s
        WHERE kind = ? AND ts >= ?
        GROUP BY subject
        ORDER BY views DESC, subject ASC
        LIMIT ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, kind, since.UTC(), limit)
	if err != nil {
		s.l.Error("clickhouse top_subjects query error",
			applogger.String("table", s.table),
			applogger.String("kind", kind),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("top subjects: %w", err)
	}
	defer rows.Close()

	out := make([]models.SubjectCount, 0, limit)
	for rows.Next() {
		var sc models.SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan subject count: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *ClickHouseActivityStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the connection belongs to the clickhouse client.
func (s *ClickHouseActivityStore) Close() error {
	return nil
}

func encodeAttrs(attrs map[string]string) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
