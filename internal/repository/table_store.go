package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// RowIDColumn orders rows by insertion. It is managed by the store and never part of a Dataset.
const RowIDColumn = "row_id"

// insertBatch keeps multi-row inserts well under driver parameter limits.
const insertBatch = 200

// TableStore reads and appends tour package rows in one SQL table. All columns are TEXT.
type TableStore struct {
	db     *DB
	table  string
	logger *slog.Logger
}

func NewTableStore(db *DB, table string, logger *slog.Logger) *TableStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableStore{db: db, table: table, logger: logger}
}

func (s *TableStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.db.Dialect)
}

// EnsureTable creates the table with every schema field when it does not exist yet.
func (s *TableStore) EnsureTable(ctx context.Context) error {
	b := s.builder()
	idType := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.Dialect == dialect.Postgres {
		idType = "BIGSERIAL PRIMARY KEY"
	}
	cols := []entsql.Querier{b.Column(RowIDColumn).Type(idType)}
	for _, f := range constants.Fields {
		cols = append(cols, b.Column(f).Type("TEXT"))
	}
	query := b.String(func(sb *entsql.Builder) {
		sb.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(s.table).Pad().Wrap(func(sb *entsql.Builder) {
			sb.JoinComma(cols...)
		})
	})
	if err := s.db.Driver.Exec(ctx, query, []any{}, nil); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	s.logger.Debug("repository.table.ensure", "table", s.table)
	return nil
}

// addColumnQuery renders ALTER TABLE ... ADD COLUMN for one TEXT column.
func (s *TableStore) addColumnQuery(column string) string {
	b := s.builder()
	return b.String(func(sb *entsql.Builder) {
		sb.WriteString("ALTER TABLE ").Ident(s.table).WriteString(" ADD COLUMN ").Join(b.Column(column).Type("TEXT"))
	})
}

// Columns returns the table's data columns in table order.
func (s *TableStore) Columns(ctx context.Context) ([]string, error) {
	cols, err := s.rawColumns(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(cols, func(c string) bool { return c == RowIDColumn }), nil
}

// rawColumns reads the column list, row_id included, from an empty select.
func (s *TableStore) rawColumns(ctx context.Context) ([]string, error) {
	b := s.builder()
	query, args := b.Select("*").From(b.Table(s.table)).Limit(0).Query()
	rows := &entsql.Rows{}
	if err := s.db.Driver.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("columns of %s: %w", s.table, err)
	}
	defer rows.Close()
	return rows.Columns()
}

// Load reads the whole table as a dataset, in insertion order when the table has a row_id.
func (s *TableStore) Load(ctx context.Context) (entity.Dataset, error) {
	start := time.Now()
	raw, err := s.rawColumns(ctx)
	if err != nil {
		return entity.Dataset{}, err
	}
	hasRowID := slices.Contains(raw, RowIDColumn)
	cols := slices.DeleteFunc(raw, func(c string) bool { return c == RowIDColumn })

	b := s.builder()
	t := b.Table(s.table)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = t.C(c)
	}
	sel := b.Select(quoted...).From(t)
	if hasRowID {
		sel.OrderBy(t.C(RowIDColumn))
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := s.db.Driver.Query(ctx, query, args, rows); err != nil {
		return entity.Dataset{}, fmt.Errorf("load %s: %w", s.table, err)
	}
	defer rows.Close()

	d := entity.Dataset{Columns: cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return entity.Dataset{}, fmt.Errorf("scan %s: %w", s.table, err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		d.Rows = append(d.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return entity.Dataset{}, err
	}

	s.logger.Info("repository.table.load",
		"table", s.table,
		"rows", d.Len(),
		"columns", len(cols),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return d, nil
}

// Append inserts records in order inside one transaction. Record fields the table lacks are
// added as TEXT columns first, so the table grows the same way an in-memory merge does.
func (s *TableStore) Append(ctx context.Context, records []entity.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	cols, err := s.Columns(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Driver.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	rollback := func(err error) (int, error) {
		if rerr := tx.Rollback(); rerr != nil {
			s.logger.Warn("repository.table.rollback_error", "table", s.table, "error", rerr)
		}
		return 0, err
	}

	for _, c := range missingColumns(cols, records) {
		if err := tx.Exec(ctx, s.addColumnQuery(c), []any{}, nil); err != nil {
			return rollback(fmt.Errorf("add column %s: %w", c, err))
		}
		cols = append(cols, c)
	}

	b := s.builder()
	for chunk := range slices.Chunk(records, insertBatch) {
		ins := b.Insert(s.table).Columns(cols...)
		for _, rec := range chunk {
			vals := rec.Values(cols)
			args := make([]any, len(vals))
			for i, v := range vals {
				args[i] = v
			}
			ins.Values(args...)
		}
		query, args := ins.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return rollback(fmt.Errorf("insert into %s: %w", s.table, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("repository.table.append", "table", s.table, "rows", len(records))
	return len(records), nil
}

// missingColumns lists record fields absent from cols: schema fields first, then by name.
func missingColumns(cols []string, records []entity.Record) []string {
	have := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		have[c] = struct{}{}
	}
	seen := map[string]struct{}{}
	for _, rec := range records {
		for k := range rec {
			if _, ok := have[k]; !ok {
				seen[k] = struct{}{}
			}
		}
	}
	var out []string
	for _, f := range constants.Fields {
		if _, ok := seen[f]; ok {
			out = append(out, f)
			delete(seen, f)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	return append(out, rest...)
}
