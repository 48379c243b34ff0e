package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
// Las implementaciones transaccionales garantizan que todo lo hecho a través
// de un Store se confirma o se descarta en conjunto.
type Store interface {
	Rows() RowRepository
	Movements() MovementRepository
	Folios() FolioRepository
	Departments() DepartmentRepository
	Floors() FloorRepository
	Areas() AreaRepository
	Categories() CategoryRepository
	Devices() DeviceRepository
	Accessories() AccessoryRepository
	Users() UserRepository
	Responsivas() ResponsivaRepository
	Bajas() BajaRepository
	Mantenimientos() MantenimientoRepository
	Documents() DocumentRepository
	BackupSchedules() BackupScheduleRepository
}
