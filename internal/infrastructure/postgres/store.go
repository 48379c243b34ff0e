package postgres

import (
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store entrega repositorios que comparten el mismo Querier (pool o tx).
type Store struct {
	q Querier
}

// NewStore construye un Store sobre el pool (sin transacción) o sobre una pgx.Tx.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

func (s *Store) Rows() repository.RowRepository               { return NewRowRepository(s.q) }
func (s *Store) Movements() repository.MovementRepository     { return NewMovementRepository(s.q) }
func (s *Store) Folios() repository.FolioRepository           { return NewFolioRepository(s.q) }
func (s *Store) Departments() repository.DepartmentRepository { return NewDepartmentRepository(s.q) }
func (s *Store) Floors() repository.FloorRepository           { return NewFloorRepository(s.q) }
func (s *Store) Areas() repository.AreaRepository             { return NewAreaRepository(s.q) }
func (s *Store) Categories() repository.CategoryRepository    { return NewCategoryRepository(s.q) }
func (s *Store) Devices() repository.DeviceRepository         { return NewDeviceRepository(s.q) }
func (s *Store) Accessories() repository.AccessoryRepository  { return NewAccessoryRepository(s.q) }
func (s *Store) Users() repository.UserRepository             { return NewUserRepository(s.q) }
func (s *Store) Responsivas() repository.ResponsivaRepository { return NewResponsivaRepository(s.q) }
func (s *Store) Bajas() repository.BajaRepository             { return NewBajaRepository(s.q) }
func (s *Store) Mantenimientos() repository.MantenimientoRepository {
	return NewMantenimientoRepository(s.q)
}
func (s *Store) Documents() repository.DocumentRepository { return NewDocumentRepository(s.q) }
func (s *Store) BackupSchedules() repository.BackupScheduleRepository {
	return NewBackupScheduleRepository(s.q)
}
