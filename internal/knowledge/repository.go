package knowledge

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/database"
)

// Repository persists course-scoped knowledge graphs as node and connection rows.
type Repository interface {
	SaveForCourse(ctx context.Context, courseID int64, g *Graph) error
	LoadForCourse(ctx context.Context, courseID int64) (*Graph, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// SaveForCourse replaces a course's stored graph with the given one.
func (r *DBRepository) SaveForCourse(ctx context.Context, courseID int64, g *Graph) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		// Connections cascade away with their nodes.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM knowledge_nodes WHERE course_id = ?", courseID); err != nil {
			return apperr.NewStorage("tx.ExecContext(delete knowledge nodes)", err)
		}

		now := time.Now().UTC()
		ids := make(map[string]int64, len(g.Nodes()))
		for _, title := range g.Nodes() {
			attrs, _ := g.Node(title)
			result, err := tx.ExecContext(ctx,
				`INSERT INTO knowledge_nodes (course_id, title, description, node_type, created_at)
				VALUES (?, ?, ?, ?, ?)`,
				courseID, title, attrs.Description, attrs.Type, now)
			if err != nil {
				return apperr.NewStorage("tx.ExecContext(insert knowledge node)", err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return apperr.NewStorage("result.LastInsertId()", err)
			}
			ids[title] = id
		}

		for _, edge := range g.Edges() {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO knowledge_connections (source_node_id, target_node_id, connection_type, created_at)
				VALUES (?, ?, ?, ?)`,
				ids[edge.Source], ids[edge.Target], edge.Relation, now)
			if err != nil {
				return apperr.NewStorage("tx.ExecContext(insert knowledge connection)", err)
			}
		}
		return nil
	})
}

// LoadForCourse rebuilds a course's graph from its stored rows. A course with
// no rows yields an empty graph.
func (r *DBRepository) LoadForCourse(ctx context.Context, courseID int64) (*Graph, error) {
	type nodeRow struct {
		ID          int64  `db:"id"`
		Title       string `db:"title"`
		Description string `db:"description"`
		NodeType    string `db:"node_type"`
	}
	var nodes []nodeRow
	err := r.db.SelectContext(ctx, &nodes,
		"SELECT id, title, description, node_type FROM knowledge_nodes WHERE course_id = ? ORDER BY id", courseID)
	if err != nil {
		return nil, apperr.NewStorage("db.SelectContext(knowledge nodes)", err)
	}

	g := NewGraph()
	titles := make(map[int64]string, len(nodes))
	for _, node := range nodes {
		if err := g.AddNode(node.Title, node.NodeType, node.Description); err != nil {
			return nil, err
		}
		titles[node.ID] = node.Title
	}

	type connRow struct {
		SourceNodeID   int64  `db:"source_node_id"`
		TargetNodeID   int64  `db:"target_node_id"`
		ConnectionType string `db:"connection_type"`
	}
	var conns []connRow
	err = r.db.SelectContext(ctx, &conns,
		`SELECT kc.source_node_id, kc.target_node_id, kc.connection_type
		FROM knowledge_connections kc
		JOIN knowledge_nodes kn ON kn.id = kc.source_node_id
		WHERE kn.course_id = ? ORDER BY kc.id`, courseID)
	if err != nil {
		return nil, apperr.NewStorage("db.SelectContext(knowledge connections)", err)
	}

	for _, conn := range conns {
		if err := g.AddEdge(titles[conn.SourceNodeID], titles[conn.TargetNodeID], conn.ConnectionType); err != nil {
			return nil, err
		}
	}
	return g, nil
}
