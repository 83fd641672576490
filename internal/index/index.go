// Package index stores the entities and identifier references of decorated
// programs in a SQLite database, so tools can answer "where is x declared"
// and "where is x used" without re-running analysis.
package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
)

// PreludeFile is the file recorded for entities that come from the prelude.
const PreludeFile = ""

var schema = []string{
	`CREATE TABLE IF NOT EXISTS entities (
		id        TEXT NOT NULL,
		file      TEXT NOT NULL,
		name      TEXT NOT NULL,
		kind      TEXT NOT NULL,
		type      TEXT NOT NULL,
		read_only INTEGER NOT NULL,
		line      INTEGER NOT NULL,
		col       INTEGER NOT NULL,
		PRIMARY KEY (id, file)
	)`,
	`CREATE TABLE IF NOT EXISTS refs (
		entity_id TEXT NOT NULL,
		file      TEXT NOT NULL,
		line      INTEGER NOT NULL,
		col       INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS entities_name ON entities(name)`,
	`CREATE INDEX IF NOT EXISTS refs_entity ON refs(entity_id)`,
}

// Entity is one stored declaration.
type Entity struct {
	ID       uuid.UUID
	File     string
	Name     string
	Kind     string
	Type     string
	ReadOnly bool
	Line     int
	Column   int
}

// Reference is one use of an entity.
type Reference struct {
	EntityID uuid.UUID
	Name     string
	Kind     string
	File     string
	Line     int
	Column   int
}

// Stats summarizes one Write.
type Stats struct {
	Entities   int
	References int
}

// Store is an open index database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index at path. ":memory:" gives a private
// in-memory index.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating index schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write replaces everything recorded for file with the declarations and
// references of program, which must already be analyzed. Entities the
// program uses but does not declare are recorded as prelude entities.
func (s *Store) Write(ctx context.Context, file string, program *ast.Program) (stats Stats, err error) {
	declared, uses := collect(program)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("index: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, q := range []string{`DELETE FROM refs WHERE file = ?`, `DELETE FROM entities WHERE file = ?`} {
		if _, err = tx.ExecContext(ctx, q, file); err != nil {
			return stats, fmt.Errorf("index: clearing %s: %w", file, err)
		}
	}

	insertEntity, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO entities
		(id, file, name, kind, type, read_only, line, col) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return stats, fmt.Errorf("index: %w", err)
	}
	defer insertEntity.Close()

	insertRef, err := tx.PrepareContext(ctx, `INSERT INTO refs (entity_id, file, line, col) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return stats, fmt.Errorf("index: %w", err)
	}
	defer insertRef.Close()

	put := func(e symbols.Entity, file string) error {
		decl := e.Decl()
		_, err := insertEntity.ExecContext(ctx, e.ID().String(), file, e.Name(), e.Kind().String(),
			e.Type().String(), symbols.IsReadOnly(e), decl.Line, decl.Column)
		return err
	}

	for _, e := range declared.order {
		if err = put(e, file); err != nil {
			return stats, fmt.Errorf("index: entity %s: %w", e.Name(), err)
		}
		stats.Entities++
	}
	for _, u := range uses {
		if !declared.has[u.Entity] {
			if err = put(u.Entity, PreludeFile); err != nil {
				return stats, fmt.Errorf("index: entity %s: %w", u.Entity.Name(), err)
			}
		}
		if _, err = insertRef.ExecContext(ctx, u.Entity.ID().String(), file, u.Token.Line, u.Token.Column); err != nil {
			return stats, fmt.Errorf("index: reference to %s: %w", u.Entity.Name(), err)
		}
		stats.References++
	}

	if err = tx.Commit(); err != nil {
		return stats, fmt.Errorf("index: %w", err)
	}
	return stats, nil
}

// Definitions returns the stored entities named name, ordered by file and
// position.
func (s *Store) Definitions(ctx context.Context, name string) ([]Entity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, file, name, kind, type, read_only, line, col
		FROM entities WHERE name = ? ORDER BY file, line, col`, name)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer rows.Close()

	var out []Entity
	for rows.Next() {
		var e Entity
		var id string
		if err := rows.Scan(&id, &e.File, &e.Name, &e.Kind, &e.Type, &e.ReadOnly, &e.Line, &e.Column); err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("index: bad entity id %q: %w", id, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// References returns every use of an entity named name, ordered by file and
// position. A reference matches the entity declared in its own file or in
// the prelude.
func (s *Store) References(ctx context.Context, name string) ([]Reference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.entity_id, e.name, e.kind, r.file, r.line, r.col
		FROM refs r JOIN entities e
		  ON e.id = r.entity_id AND (e.file = r.file OR e.file = ?)
		WHERE e.name = ?
		ORDER BY r.file, r.line, r.col`, PreludeFile, name)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer rows.Close()

	var out []Reference
	for rows.Next() {
		var r Reference
		var id string
		if err := rows.Scan(&id, &r.Name, &r.Kind, &r.File, &r.Line, &r.Column); err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		if r.EntityID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("index: bad entity id %q: %w", id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type entitySet struct {
	order []symbols.Entity
	has   map[symbols.Entity]bool
}

func (s *entitySet) add(e symbols.Entity) {
	if e == nil || s.has[e] {
		return
	}
	s.has[e] = true
	s.order = append(s.order, e)
}

type use struct {
	Entity symbols.Entity
	Token  token.Token
}

// collect splits the decorated leaves of program into declarations and uses.
func collect(program *ast.Program) (*entitySet, []use) {
	declared := &entitySet{has: map[symbols.Entity]bool{}}
	declLeaves := map[*ast.Token]bool{}

	ast.Inspect(program, func(n ast.Node) bool {
		var leaf *ast.Token
		switch d := n.(type) {
		case *ast.VariableDeclaration:
			leaf = d.Variable
		case *ast.LoopDeclaration:
			leaf = d.Variable
		case *ast.FunctionDeclaration:
			leaf = d.Name
		case *ast.Parameter:
			leaf = d.Name
		}
		if leaf != nil && leaf.Entity != nil {
			declLeaves[leaf] = true
			declared.add(leaf.Entity)
		}
		return true
	})

	var uses []use
	ast.Inspect(program, func(n ast.Node) bool {
		if leaf, ok := n.(*ast.Token); ok && leaf.Entity != nil && !declLeaves[leaf] {
			uses = append(uses, use{Entity: leaf.Entity, Token: leaf.Token})
		}
		return true
	})
	return declared, uses
}
