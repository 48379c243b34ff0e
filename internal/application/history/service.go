package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// maxLimit tope de una página; sin limit se devuelve el historial completo.
const maxLimit = 1000

// Service consulta el historial y deshace movimientos.
// Cada operación de deshacer corre completa en una sola transacción.
type Service struct {
	store repository.Store
	tx    ports.TxRunner
	log   *logger.Logger
}

// NewService construye el servicio de historial.
func NewService(store repository.Store, tx ports.TxRunner, log *logger.Logger) *Service {
	return &Service{store: store, tx: tx, log: log}
}

// List movimientos más recientes primero.
func (s *Service) List(ctx context.Context, in dto.HistoryFilter) ([]dto.MovementResponse, error) {
	f := repository.MovementFilter{
		Table:    in.Table,
		ObjectID: in.ObjectID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Table != "" {
		if _, err := movement.Lookup(in.Table); err != nil {
			return nil, err
		}
	}
	if in.ChangeType != 0 {
		ct, err := movement.ParseChangeType(in.ChangeType)
		if err != nil {
			return nil, err
		}
		f.ChangeType = ct
	}
	switch {
	case f.Limit < 0:
		f.Limit = 0
	case f.Limit > maxLimit:
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	list, err := s.store.Movements().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Get un movimiento por id.
func (s *Service) Get(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	m, err := s.store.Movements().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(m)
	return &resp, nil
}

// Restore deshace el movimiento: elimina lo creado o vuelve la fila a before_info.
func (s *Service) Restore(ctx context.Context, movementID, userID int64) (*dto.UndoResponse, error) {
	return s.undo(ctx, movementID, userID, movement.ActionRestore)
}

// Revert deshace una modificación; cualquier otro tipo se rechaza.
func (s *Service) Revert(ctx context.Context, movementID, userID int64) (*dto.UndoResponse, error) {
	return s.undo(ctx, movementID, userID, movement.ActionRevert)
}

// DeletePermanent elimina físicamente la fila del movimiento y deja un registro hard-delete.
func (s *Service) DeletePermanent(ctx context.Context, movementID, userID int64) (*dto.UndoResponse, error) {
	return s.undo(ctx, movementID, userID, movement.ActionPurge)
}

func (s *Service) undo(ctx context.Context, movementID, userID int64, action movement.Action) (*dto.UndoResponse, error) {
	var resp *dto.UndoResponse
	err := s.tx.Run(ctx, func(st repository.Store) error {
		m, err := st.Movements().GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		plan, err := movement.PlanUndo(m, action)
		if err != nil {
			return err
		}
		resp, err = execute(ctx, st, m, plan, userID)
		if resp != nil {
			resp.Action = action.String()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("action", action.String()).
		Int64("movement_id", movementID).
		Str("table", resp.Table).
		Int64("object_id", resp.ObjectID).
		Int64("user_id", userID).
		Msg("historial: movimiento deshecho")
	return resp, nil
}

// execute aplica el plan dentro de la transacción de st.
func execute(ctx context.Context, st repository.Store, m *movement.Movement, plan movement.Plan, userID int64) (*dto.UndoResponse, error) {
	rows := st.Rows()
	resp := &dto.UndoResponse{Table: m.Table, ObjectID: m.ObjectID}

	// ── 1. Estado actual de la fila ───────────────────────────────────────────
	current, err := rows.Snapshot(ctx, m.Table, m.ObjectID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		current = nil
	case err != nil:
		return nil, err
	}

	// ── 2. Borrado físico o restauración campo a campo ───────────────────────
	var after movement.Snapshot
	if plan.DeleteRow {
		if current == nil && plan.Emit == movement.HardDelete {
			// La fila ya no existe: el registro hard-delete conserva el último estado conocido.
			current = lastKnown(m)
		}
		if _, err := rows.Delete(ctx, m.Table, m.ObjectID); err != nil {
			return nil, err
		}
	}
	if plan.Apply != nil {
		if current == nil {
			return nil, fmt.Errorf("%s/%d: %w", m.Table, m.ObjectID, domain.ErrNotFound)
		}
		if err := rows.Apply(ctx, m.Table, m.ObjectID, plan.Apply); err != nil {
			return nil, err
		}
		if after, err = rows.Snapshot(ctx, m.Table, m.ObjectID); err != nil {
			return nil, err
		}
		resp.Restored = after
	}

	// ── 3. Nuevo movimiento ───────────────────────────────────────────────────
	if plan.Emit != 0 {
		rec, err := Record(ctx, st.Movements(), m.Table, plan.Emit, m.ObjectID, userID, current, after)
		if err != nil {
			return nil, err
		}
		resp.MovementID = rec.ID
	}

	// ── 4. Depurar el historial que quedó obsoleto ───────────────────────────
	if len(plan.Purge) > 0 {
		n, err := st.Movements().DeleteForObject(ctx, m.Table, m.ObjectID, plan.Purge)
		if err != nil {
			return nil, err
		}
		resp.Purged = n
	}
	return resp, nil
}

func lastKnown(m *movement.Movement) movement.Snapshot {
	if m.After != nil {
		return m.After
	}
	if m.Before != nil {
		return m.Before
	}
	return movement.Snapshot{"id": m.ObjectID}
}

func toMovementResponse(m *movement.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		AffectedTable:  m.Table,
		ChangeType:     int(m.ChangeType),
		ChangeTypeName: m.ChangeType.String(),
		ObjectID:       m.ObjectID,
		UserID:         m.UserID,
		UserName:       m.UserName,
		BeforeInfo:     m.Before,
		AfterInfo:      m.After,
		MovementTime:   m.Time,
	}
}
