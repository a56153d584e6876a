//go:build cgo

package crategraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuCrateGraphStore implements Store using KuzuDB, mirroring
// onedusk-pd/internal/graph.KuzuStore's DDL-first, CGO-gated shape. It is
// the persistence spec.md §1 calls for when it says the projected graph
// must be "suitable for downstream semantic analysis" — a Cypher-queryable
// crate graph a separate analysis process can open.
type KuzuCrateGraphStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

var _ Store = (*KuzuCrateGraphStore)(nil)

// NewKuzuCrateGraphStore opens an in-memory KuzuDB instance.
func NewKuzuCrateGraphStore() (*KuzuCrateGraphStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuCrateGraphStore{db: db, conn: conn}, nil
}

// NewKuzuCrateGraphFileStore opens a file-backed KuzuDB instance at dbPath,
// so a projected crate graph can survive across process runs.
func NewKuzuCrateGraphFileStore(dbPath string) (*KuzuCrateGraphStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuCrateGraphStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuCrateGraphStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

var crateGraphDDL = []string{
	`CREATE NODE TABLE IF NOT EXISTS Crate(
		id INT64,
		root_path STRING,
		edition STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Crate TO Crate, name STRING)`,
}

// InitSchema creates the Crate node table and DEPENDS_ON relationship table
// if they do not exist.
func (s *KuzuCrateGraphStore) InitSchema(_ context.Context) error {
	for _, stmt := range crateGraphDDL {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// AddCrate inserts a Crate node.
func (s *KuzuCrateGraphStore) AddCrate(_ context.Context, id CrateID, rootPath string, edition Edition) error {
	return s.exec(
		"CREATE (c:Crate {id: $id, root_path: $root, edition: $edition})",
		map[string]any{
			"id":      int64(id),
			"root":    rootPath,
			"edition": string(edition),
		},
	)
}

// AddDependency inserts a DEPENDS_ON edge.
func (s *KuzuCrateGraphStore) AddDependency(_ context.Context, from CrateID, name string, to CrateID) error {
	return s.exec(
		`MATCH (a:Crate {id: $from}), (b:Crate {id: $to})
		 CREATE (a)-[:DEPENDS_ON {name: $name}]->(b)`,
		map[string]any{
			"from": int64(from),
			"to":   int64(to),
			"name": name,
		},
	)
}

// Dependencies returns the outgoing DEPENDS_ON edges of from.
func (s *KuzuCrateGraphStore) Dependencies(_ context.Context, from CrateID) ([]StoredDependency, error) {
	rows, err := s.query(
		`MATCH (a:Crate {id: $from})-[r:DEPENDS_ON]->(b:Crate)
		 RETURN r.name, b.id`,
		map[string]any{"from": int64(from)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]StoredDependency, 0, len(rows))
	for _, r := range rows {
		out = append(out, StoredDependency{Name: toString(r[0]), To: CrateID(toInt(r[1]))})
	}
	return out, nil
}

// CrateCount returns the number of Crate nodes.
func (s *KuzuCrateGraphStore) CrateCount(_ context.Context) (int, error) {
	rows, err := s.query("MATCH (c:Crate) RETURN count(c)", nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Internal helpers (mirrors onedusk-pd's KuzuStore) ----------

func (s *KuzuCrateGraphStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

func (s *KuzuCrateGraphStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
