package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre la tabla movements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de la bitácora.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento; los snapshots se guardan como JSONB.
func (r *MovementRepo) Create(ctx context.Context, m *movement.Movement) error {
	before, err := encodeSnapshot(m.Before)
	if err != nil {
		return err
	}
	after, err := encodeSnapshot(m.After)
	if err != nil {
		return err
	}
	var userID *int64
	if m.UserID > 0 {
		userID = &m.UserID
	}
	query := `
		INSERT INTO movements (affected_table, change_type, object_id, user_id, before_info, after_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, movement_time`
	err = r.q.QueryRow(ctx, query, m.Table, int16(m.ChangeType), m.ObjectID, userID, before, after).
		Scan(&m.ID, &m.Time)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementColumns = `
	m.id, m.affected_table, m.change_type, m.object_id, m.user_id,
	m.before_info, m.after_info, m.movement_time, COALESCE(u.name, '')`

// GetByID obtiene un movimiento por id.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*movement.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements m LEFT JOIN users u ON u.id = m.user_id
		WHERE m.id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("get movement", err)
	}
	return m, nil
}

// List historial filtrado, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*movement.Movement, error) {
	var conds []string
	var args []any
	if f.Table != "" {
		args = append(args, f.Table)
		conds = append(conds, fmt.Sprintf("m.affected_table = $%d", len(args)))
	}
	if f.ObjectID > 0 {
		args = append(args, f.ObjectID)
		conds = append(conds, fmt.Sprintf("m.object_id = $%d", len(args)))
	}
	if f.ChangeType != 0 {
		args = append(args, int16(f.ChangeType))
		conds = append(conds, fmt.Sprintf("m.change_type = $%d", len(args)))
	}

	query := `SELECT ` + movementColumns + `
		FROM movements m LEFT JOIN users u ON u.id = m.user_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.movement_time DESC, m.id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*movement.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// DeleteForObject purga los movimientos del objeto de los tipos indicados.
func (r *MovementRepo) DeleteForObject(ctx context.Context, table string, objectID int64, kinds []movement.ChangeType) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}
	types := make([]int16, len(kinds))
	for i, k := range kinds {
		types[i] = int16(k)
	}
	cmd, err := r.q.Exec(ctx, `
		DELETE FROM movements
		WHERE affected_table = $1 AND object_id = $2 AND change_type = ANY($3)`,
		table, objectID, types)
	if err != nil {
		return 0, fmt.Errorf("purge movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanMovement(row pgx.Row) (*movement.Movement, error) {
	var (
		m             movement.Movement
		kind          int16
		userID        *int64
		before, after []byte
		movementTime  time.Time
	)
	if err := row.Scan(&m.ID, &m.Table, &kind, &m.ObjectID, &userID,
		&before, &after, &movementTime, &m.UserName); err != nil {
		return nil, err
	}
	m.ChangeType = movement.ChangeType(kind)
	m.Time = movementTime
	if userID != nil {
		m.UserID = *userID
	}

	t, err := movement.Lookup(m.Table)
	if err != nil {
		// Tabla ya no auditada: se conserva el contenido tal cual para consulta.
		m.Before, m.After = rawSnapshot(before), rawSnapshot(after)
		return &m, nil
	}
	if m.Before, err = t.Decode(before); err != nil {
		return nil, err
	}
	if m.After, err = t.Decode(after); err != nil {
		return nil, err
	}
	return &m, nil
}

func encodeSnapshot(s movement.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	return b, nil
}

func rawSnapshot(b []byte) movement.Snapshot {
	if len(b) == 0 {
		return nil
	}
	var s movement.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	return s
}
