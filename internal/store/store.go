package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modscan/internal/definition"
	"modscan/internal/fingerprint"
	"modscan/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// insertBatchSize bounds the statements queued in one pgx.Batch.
const insertBatchSize = 500

// ErrRunNotFound is returned when a run id has no stored definitions.
var ErrRunNotFound = errors.New("parse run not found")

// DefinitionStore persists parse runs and their definitions in PostgreSQL,
// with a pgvector fingerprint per definition.
type DefinitionStore struct {
	pool        *pgxpool.Pool
	fingerprint *fingerprint.Fingerprinter
}

// NewDefinitionStore creates a store. The fingerprinter's width must match the schema.
func NewDefinitionStore(pool *pgxpool.Pool, fp *fingerprint.Fingerprinter) *DefinitionStore {
	return &DefinitionStore{pool: pool, fingerprint: fp}
}

// Run describes one ingestion.
type Run struct {
	ID        uuid.UUID
	Game      string
	Mods      []string
	StartedAt time.Time
}

// schemaStatements returns the DDL for a fingerprint width.
func schemaStatements(dimensions int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS parse_runs (
			id         UUID PRIMARY KEY,
			game       TEXT NOT NULL,
			mods       TEXT[] NOT NULL,
			started_at TIMESTAMPTZ NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS definitions (
			id             BIGSERIAL PRIMARY KEY,
			run_id         UUID NOT NULL REFERENCES parse_runs(id) ON DELETE CASCADE,
			mod_name       TEXT NOT NULL,
			file           TEXT NOT NULL,
			type           TEXT NOT NULL,
			def_id         TEXT NOT NULL,
			value_type     TEXT NOT NULL,
			code           TEXT NOT NULL,
			content_sha    TEXT NOT NULL,
			code_tag       TEXT NOT NULL DEFAULT '',
			dependencies   TEXT[] NOT NULL DEFAULT '{}',
			fingerprint    vector(%d) NOT NULL
		)`, dimensions),
		`CREATE INDEX IF NOT EXISTS definitions_run_key ON definitions (run_id, type, def_id)`,
	}
}

// EnsureSchema creates the extension, tables and indexes if missing.
func (s *DefinitionStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.fingerprint.Dimensions()) {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	log.Info().Msg("Definition store schema ensured")
	return nil
}

const insertDefinitionSQL = `
	INSERT INTO definitions
		(run_id, mod_name, file, type, def_id, value_type, code, content_sha, code_tag, dependencies, fingerprint)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// SaveRun stores a run and all of its definitions, returning the new run id.
func (s *DefinitionStore) SaveRun(ctx context.Context, game string, mods []string, defs []*definition.Definition) (uuid.UUID, error) {
	run := Run{ID: uuid.New(), Game: game, Mods: mods, StartedAt: time.Now().UTC()}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO parse_runs (id, game, mods, started_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.Game, run.Mods, run.StartedAt,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	for _, chunk := range worker.Batch(defs, insertBatchSize) {
		codes := make([]string, len(chunk))
		for i, d := range chunk {
			codes[i] = d.Code
		}
		vectors := s.fingerprint.EmbedBatch(codes)

		batch := &pgx.Batch{}
		for i, d := range chunk {
			deps := d.Dependencies
			if deps == nil {
				deps = []string{}
			}
			batch.Queue(insertDefinitionSQL,
				run.ID, d.ModName, d.File, d.Type, d.ID, d.ValueType.String(), d.Code, d.ContentSHA, d.CodeTag, deps,
				pgvector.NewVector(vectors[i]),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("insert definitions: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit run: %w", err)
	}

	log.Info().Str("run", run.ID.String()).Int("definitions", len(defs)).Msg("Stored parse run")
	return run.ID, nil
}

// ConflictRow is a definition key provided by several mods in one run.
type ConflictRow struct {
	Type  string
	ID    string
	Mods  []string
	Files []string
}

// Conflicts lists keys defined by more than one mod in a run.
func (s *DefinitionStore) Conflicts(ctx context.Context, runID uuid.UUID) ([]ConflictRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT type, def_id, array_agg(DISTINCT mod_name ORDER BY mod_name), array_agg(DISTINCT file ORDER BY file)
		FROM definitions
		WHERE run_id = $1
		GROUP BY type, def_id
		HAVING count(DISTINCT mod_name) > 1
		ORDER BY type, def_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query conflicts: %w", err)
	}
	defer rows.Close()

	var out []ConflictRow
	for rows.Next() {
		var r ConflictRow
		if err := rows.Scan(&r.Type, &r.ID, &r.Mods, &r.Files); err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Match is a stored definition close to a query.
type Match struct {
	ModName    string
	File       string
	Type       string
	ID         string
	Similarity float64
}

// Similar returns the topK definitions of a run whose fingerprint is closest to code.
func (s *DefinitionStore) Similar(ctx context.Context, runID uuid.UUID, code string, topK int) ([]Match, error) {
	query := pgvector.NewVector(s.fingerprint.Embed(code))
	rows, err := s.pool.Query(ctx, `
		SELECT mod_name, file, type, def_id, 1 - (fingerprint <=> $2) AS similarity
		FROM definitions
		WHERE run_id = $1
		ORDER BY fingerprint <=> $2
		LIMIT $3
	`, runID, query, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ModName, &m.File, &m.Type, &m.ID, &m.Similarity); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	return out, nil
}

// ParseRunID parses a run id given on the command line.
func ParseRunID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run id %q: %w", s, err)
	}
	return id, nil
}
