// Package apptest base de datos en memoria que implementa repository.Store y
// ports.TxRunner para probar casos de uso sin PostgreSQL.
//
// Las filas se guardan como snapshots con las columnas de movement.Lookup.
// Los repositorios que ninguna prueba usa quedan sin implementar y entran en pánico.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/folio"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

type link struct {
	responsivaID int64
	deviceID     int64
}

type state struct {
	rows      map[string]map[int64]movement.Snapshot
	seq       map[string]int64
	movements map[int64]*movement.Movement
	links     []link
	documents map[repository.DocumentKind]map[int64]*entity.Document
	backups   []entity.BackupSchedule
}

// DB estado compartido por el Store y el TxRunner.
type DB struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
	// tx una transacción a la vez, como si cada una tomara FOR UPDATE sobre todo.
	tx sync.Mutex
}

var (
	_ repository.Store = (*Store)(nil)
	_ ports.TxRunner   = (*DB)(nil)
)

// NewDB base vacía.
func NewDB() *DB {
	return &DB{
		st: state{
			rows:      map[string]map[int64]movement.Snapshot{},
			seq:       map[string]int64{},
			movements: map[int64]*movement.Movement{},
			documents: map[repository.DocumentKind]map[int64]*entity.Document{},
		},
		now: time.Now,
	}
}

// Store vista de repositorios sobre la base.
func (db *DB) Store() *Store { return &Store{db: db} }

// Run ejecuta fn; si devuelve error el estado vuelve a como estaba antes.
// Las transacciones se serializan: la restauración nunca pisa otra transacción confirmada.
func (db *DB) Run(ctx context.Context, fn func(s repository.Store) error) error {
	db.tx.Lock()
	defer db.tx.Unlock()

	db.mu.Lock()
	saved := db.st.clone()
	db.mu.Unlock()

	if err := fn(db.Store()); err != nil {
		db.mu.Lock()
		db.st = saved
		db.mu.Unlock()
		return err
	}
	return nil
}

// Insert agrega una fila (status 1 por omisión en tablas con baja lógica) y devuelve su id.
func (db *DB) Insert(table string, row map[string]any) int64 {
	t, err := movement.Lookup(table)
	if err != nil {
		panic(err)
	}
	snap, err := t.Project(row)
	if err != nil {
		panic(err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.insert(t, snap)
}

// Row copia de la fila; nil si no existe.
func (db *DB) Row(table string, id int64) movement.Snapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return copySnap(db.st.rows[table][id])
}

// Link relaciona un equipo con una responsiva (responsiva_equipos).
func (db *DB) Link(responsivaID, deviceID int64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.links = append(db.st.links, link{responsivaID, deviceID})
}

// AllMovements movimientos en orden de inserción.
func (db *DB) AllMovements() []*movement.Movement {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*movement.Movement, 0, len(db.st.movements))
	for _, m := range db.st.movements {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (st *state) insert(t movement.Table, snap movement.Snapshot) int64 {
	if snap == nil {
		snap = movement.Snapshot{}
	}
	id, _ := snap["id"].(int64)
	if id == 0 {
		st.seq[t.Name]++
		id = st.seq[t.Name]
	} else if id > st.seq[t.Name] {
		st.seq[t.Name] = id
	}
	snap["id"] = id
	for _, c := range t.Columns {
		if _, ok := snap[c.Name]; ok {
			continue
		}
		switch {
		case c.Name == "status":
			snap[c.Name] = int64(entity.StatusActive)
		case c.Kind == movement.KindText:
			snap[c.Name] = ""
		case c.Kind == movement.KindBool:
			snap[c.Name] = false
		}
	}
	if st.rows[t.Name] == nil {
		st.rows[t.Name] = map[int64]movement.Snapshot{}
	}
	st.rows[t.Name][id] = snap
	return id
}

func (st state) clone() state {
	out := state{
		rows:      make(map[string]map[int64]movement.Snapshot, len(st.rows)),
		seq:       make(map[string]int64, len(st.seq)),
		movements: make(map[int64]*movement.Movement, len(st.movements)),
		links:     append([]link(nil), st.links...),
		documents: make(map[repository.DocumentKind]map[int64]*entity.Document, len(st.documents)),
		backups:   append([]entity.BackupSchedule(nil), st.backups...),
	}
	for table, rows := range st.rows {
		m := make(map[int64]movement.Snapshot, len(rows))
		for id, r := range rows {
			m[id] = copySnap(r)
		}
		out.rows[table] = m
	}
	for k, v := range st.seq {
		out.seq[k] = v
	}
	for id, mv := range st.movements {
		c := *mv
		out.movements[id] = &c
	}
	for kind, docs := range st.documents {
		m := make(map[int64]*entity.Document, len(docs))
		for id, d := range docs {
			c := *d
			m[id] = &c
		}
		out.documents[kind] = m
	}
	return out
}

func copySnap(s movement.Snapshot) movement.Snapshot {
	if s == nil {
		return nil
	}
	out := make(movement.Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func str(s movement.Snapshot, k string) string {
	v, _ := s[k].(string)
	return v
}

func i64(s movement.Snapshot, k string) int64 {
	v, _ := s[k].(int64)
	return v
}

func boolean(s movement.Snapshot, k string) bool {
	v, _ := s[k].(bool)
	return v
}

func tm(s movement.Snapshot, k string) time.Time {
	v, _ := s[k].(time.Time)
	return v
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
}

// ─── Store ──────────────────────────────────────────────────────────────────

// Store implementa repository.Store sobre DB.
type Store struct {
	db *DB
}

func (s *Store) Rows() repository.RowRepository           { return rowRepo{s.db} }
func (s *Store) Movements() repository.MovementRepository { return movementRepo{s.db} }
func (s *Store) Folios() repository.FolioRepository       { return folioRepo{s.db} }
func (s *Store) Departments() repository.DepartmentRepository {
	return departmentRepo{db: s.db}
}
func (s *Store) Floors() repository.FloorRepository { return floorRepo{db: s.db} }
func (s *Store) Areas() repository.AreaRepository   { return areaRepo{db: s.db} }
func (s *Store) Categories() repository.CategoryRepository {
	return categoryRepo{db: s.db}
}
func (s *Store) Devices() repository.DeviceRepository { return deviceRepo{db: s.db} }
func (s *Store) Accessories() repository.AccessoryRepository {
	return accessoryRepo{}
}
func (s *Store) Users() repository.UserRepository { return userRepo{} }
func (s *Store) Responsivas() repository.ResponsivaRepository {
	return responsivaRepo{db: s.db}
}
func (s *Store) Bajas() repository.BajaRepository { return bajaRepo{db: s.db} }
func (s *Store) Mantenimientos() repository.MantenimientoRepository {
	return mantenimientoRepo{db: s.db}
}
func (s *Store) Documents() repository.DocumentRepository { return documentRepo{s.db} }
func (s *Store) BackupSchedules() repository.BackupScheduleRepository {
	return backupRepo{s.db}
}

// Repositorios sin implementación en memoria.
type (
	accessoryRepo struct{ repository.AccessoryRepository }
	userRepo      struct{ repository.UserRepository }
)

// ─── Rows ───────────────────────────────────────────────────────────────────

type rowRepo struct{ db *DB }

func (r rowRepo) Snapshot(_ context.Context, table string, id int64) (movement.Snapshot, error) {
	t, err := movement.Lookup(table)
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[table][id]
	if !ok {
		return nil, notFound("snapshot "+table, id)
	}
	return t.Project(copySnap(row))
}

func (r rowRepo) Apply(_ context.Context, table string, id int64, s movement.Snapshot) error {
	t, err := movement.Lookup(table)
	if err != nil {
		return err
	}
	s, err = t.Project(s)
	if err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[table][id]
	if !ok {
		return notFound("apply "+table, id)
	}
	names, values := t.Assignments(s)
	for i, n := range names {
		row[n] = values[i]
	}
	return nil
}

func (r rowRepo) Delete(_ context.Context, table string, id int64) (bool, error) {
	if _, err := movement.Lookup(table); err != nil {
		return false, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.st.rows[table][id]; !ok {
		return false, nil
	}
	delete(r.db.st.rows[table], id)
	if table == movement.TableResponsivas {
		kept := r.db.st.links[:0]
		for _, l := range r.db.st.links {
			if l.responsivaID != id {
				kept = append(kept, l)
			}
		}
		r.db.st.links = kept
	}
	return true, nil
}

func (r rowRepo) SetStatus(_ context.Context, table string, id int64, status int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[table][id]
	if !ok {
		return notFound("set status "+table, id)
	}
	if _, ok := row["status"]; !ok {
		return fmt.Errorf("%w: %s no tiene baja lógica", domain.ErrInvalidInput, table)
	}
	row["status"] = int64(status)
	return nil
}

// ─── Movements ──────────────────────────────────────────────────────────────

type movementRepo struct{ db *DB }

func (r movementRepo) Create(_ context.Context, m *movement.Movement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.st.seq["movements"]++
	m.ID = r.db.st.seq["movements"]
	m.Time = r.db.now()
	c := *m
	r.db.st.movements[m.ID] = &c
	return nil
}

func (r movementRepo) GetByID(_ context.Context, id int64) (*movement.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.st.movements[id]
	if !ok {
		return nil, notFound("movimiento", id)
	}
	c := *m
	c.UserName = str(r.db.st.rows[movement.TableUsers][m.UserID], "username")
	return &c, nil
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*movement.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*movement.Movement
	for _, m := range r.db.st.movements {
		if f.Table != "" && m.Table != f.Table ||
			f.ObjectID != 0 && m.ObjectID != f.ObjectID ||
			f.ChangeType != 0 && m.ChangeType != f.ChangeType {
			continue
		}
		c := *m
		c.UserName = str(r.db.st.rows[movement.TableUsers][m.UserID], "username")
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r movementRepo) DeleteForObject(_ context.Context, table string, objectID int64, kinds []movement.ChangeType) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, m := range r.db.st.movements {
		if m.Table != table || m.ObjectID != objectID {
			continue
		}
		for _, k := range kinds {
			if m.ChangeType == k {
				delete(r.db.st.movements, id)
				n++
				break
			}
		}
	}
	return n, nil
}

// ─── Folios ─────────────────────────────────────────────────────────────────

type folioRepo struct{ db *DB }

func (r folioRepo) Next(_ context.Context, table string, series folio.Series) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	max := 0
	for _, row := range r.db.st.rows[table] {
		if n, err := series.Number(str(row, "folio")); err == nil && n > max {
			max = n
		}
	}
	return series.Next(max), nil
}

// ─── Catálogos ──────────────────────────────────────────────────────────────

type departmentRepo struct {
	repository.DepartmentRepository
	db *DB
}

func (r departmentRepo) GetByID(_ context.Context, id int64) (*entity.Department, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableDepartments][id]
	if !ok || i64(row, "status") != entity.StatusActive {
		return nil, notFound("departamento", id)
	}
	return &entity.Department{
		ID:             id,
		Name:           str(row, "name"),
		Abbreviation:   str(row, "abbreviation"),
		Description:    str(row, "description"),
		DepartmentHead: str(row, "department_head"),
		Status:         int(i64(row, "status")),
	}, nil
}

func (r departmentRepo) Create(_ context.Context, d *entity.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, _ := movement.Lookup(movement.TableDepartments)
	for _, row := range r.db.st.rows[movement.TableDepartments] {
		if strings.EqualFold(str(row, "name"), d.Name) {
			return domain.NewFieldError("name", domain.ErrDuplicate)
		}
	}
	d.ID = r.db.st.insert(t, movement.Snapshot{
		"name": d.Name, "abbreviation": d.Abbreviation, "description": d.Description,
		"department_head": d.DepartmentHead,
	})
	d.Status = entity.StatusActive
	return nil
}

func (r departmentRepo) Update(_ context.Context, d *entity.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableDepartments][d.ID]
	if !ok {
		return notFound("departamento", d.ID)
	}
	row["name"], row["abbreviation"] = d.Name, d.Abbreviation
	row["description"], row["department_head"] = d.Description, d.DepartmentHead
	return nil
}

// CountAssignedDevices equipos asignados por responsivas activas del departamento.
func (r departmentRepo) CountAssignedDevices(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	seen := map[int64]bool{}
	for _, l := range r.db.st.links {
		rs := r.db.st.rows[movement.TableResponsivas][l.responsivaID]
		dev := r.db.st.rows[movement.TableDevices][l.deviceID]
		if rs == nil || dev == nil || i64(rs, "status") != entity.StatusActive || i64(rs, "id_departamento") != id {
			continue
		}
		if str(dev, "func") == string(entity.FuncAsignado) && i64(dev, "status") == entity.StatusActive {
			seen[l.deviceID] = true
		}
	}
	return int64(len(seen)), nil
}

type floorRepo struct {
	repository.FloorRepository
	db *DB
}

func (r floorRepo) GetByID(_ context.Context, id int64) (*entity.Floor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableFloors][id]
	if !ok || i64(row, "status") != entity.StatusActive {
		return nil, notFound("piso", id)
	}
	return &entity.Floor{ID: id, Name: str(row, "name"), Description: str(row, "description"), Status: entity.StatusActive}, nil
}

type areaRepo struct {
	repository.AreaRepository
	db *DB
}

func (r areaRepo) GetByID(_ context.Context, id int64) (*entity.Area, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableAreas][id]
	if !ok || i64(row, "status") != entity.StatusActive {
		return nil, notFound("área", id)
	}
	floorID := i64(row, "id_floor")
	return &entity.Area{
		ID:          id,
		Name:        str(row, "name"),
		Description: str(row, "description"),
		FloorID:     floorID,
		FloorName:   str(r.db.st.rows[movement.TableFloors][floorID], "name"),
		Status:      entity.StatusActive,
	}, nil
}

type categoryRepo struct {
	repository.CategoryRepository
	db *DB
}

func (r categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableCategories][id]
	if !ok || i64(row, "status") != entity.StatusActive {
		return nil, notFound("categoría", id)
	}
	return &entity.Category{
		ID:          id,
		Name:        str(row, "name"),
		Description: str(row, "description"),
		Type:        entity.CategoryType(i64(row, "type")),
		Status:      entity.StatusActive,
	}, nil
}

// ─── Equipos ────────────────────────────────────────────────────────────────

type deviceRepo struct {
	repository.DeviceRepository
	db *DB
}

func (r deviceRepo) device(id int64) (*entity.Device, bool) {
	row, ok := r.db.st.rows[movement.TableDevices][id]
	if !ok {
		return nil, false
	}
	catID := i64(row, "category_id")
	return &entity.Device{
		ID:           id,
		Brand:        str(row, "brand"),
		Model:        str(row, "model"),
		SerialNumber: str(row, "serial_number"),
		CategoryID:   catID,
		Status:       int(i64(row, "status")),
		Details:      str(row, "details"),
		IsNew:        boolean(row, "is_new"),
		Func:         entity.DeviceFunc(str(row, "func")),
		CategoryName: str(r.db.st.rows[movement.TableCategories][catID], "name"),
	}, true
}

func (r deviceRepo) GetByID(_ context.Context, id int64) (*entity.Device, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.device(id)
	if !ok || d.Status != entity.StatusActive {
		return nil, notFound("equipo", id)
	}
	return d, nil
}

func (r deviceRepo) GetForUpdate(_ context.Context, id int64) (*entity.Device, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.device(id)
	if !ok {
		return nil, notFound("equipo", id)
	}
	return d, nil
}

func (r deviceRepo) SetFunc(_ context.Context, id int64, f entity.DeviceFunc, markUsed bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableDevices][id]
	if !ok {
		return notFound("equipo", id)
	}
	row["func"] = string(f)
	if markUsed {
		row["is_new"] = false
	}
	return nil
}

// ─── Documentos ─────────────────────────────────────────────────────────────

type responsivaRepo struct {
	repository.ResponsivaRepository
	db *DB
}

func (r responsivaRepo) GetByID(_ context.Context, id int64) (*entity.Responsiva, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableResponsivas][id]
	if !ok {
		return nil, notFound("responsiva", id)
	}
	rs := &entity.Responsiva{
		ID:             id,
		Folio:          str(row, "folio"),
		Fecha:          tm(row, "fecha"),
		Responsable:    str(row, "responsable"),
		AreaID:         i64(row, "id_area"),
		DepartmentID:   i64(row, "id_departamento"),
		UserID:         i64(row, "user_id"),
		Status:         int(i64(row, "status")),
		AreaName:       str(r.db.st.rows[movement.TableAreas][i64(row, "id_area")], "name"),
		DepartmentName: str(r.db.st.rows[movement.TableDepartments][i64(row, "id_departamento")], "name"),
	}
	dr := deviceRepo{db: r.db}
	for _, l := range r.db.st.links {
		if l.responsivaID != id {
			continue
		}
		if d, ok := dr.device(l.deviceID); ok {
			rs.Devices = append(rs.Devices, entity.ResponsivaDevice{
				ID: d.ID, Brand: d.Brand, Model: d.Model, SerialNumber: d.SerialNumber, Category: d.CategoryName,
			})
		}
	}
	return rs, nil
}

func (r responsivaRepo) Create(_ context.Context, rs *entity.Responsiva) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, _ := movement.Lookup(movement.TableResponsivas)
	rs.ID = r.db.st.insert(t, movement.Snapshot{
		"folio": rs.Folio, "fecha": rs.Fecha, "responsable": rs.Responsable,
		"id_area": rs.AreaID, "id_departamento": rs.DepartmentID, "user_id": rs.UserID,
	})
	rs.Status = entity.StatusActive
	return nil
}

func (r responsivaRepo) AddDevice(_ context.Context, responsivaID, deviceID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.st.links = append(r.db.st.links, link{responsivaID, deviceID})
	return nil
}

func (r responsivaRepo) DeviceIDs(_ context.Context, responsivaID int64) ([]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []int64
	for _, l := range r.db.st.links {
		if l.responsivaID == responsivaID {
			out = append(out, l.deviceID)
		}
	}
	return out, nil
}

type bajaRepo struct {
	repository.BajaRepository
	db *DB
}

func (r bajaRepo) GetByID(_ context.Context, id int64) (*entity.Baja, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableBajas][id]
	if !ok {
		return nil, notFound("baja", id)
	}
	b := &entity.Baja{
		ID:            id,
		Folio:         str(row, "folio"),
		Fecha:         tm(row, "fecha"),
		Motivo:        str(row, "motivo"),
		DetectadoPor:  str(row, "detectado_por"),
		Observaciones: str(row, "observaciones"),
		DeviceID:      i64(row, "id_device"),
		UserID:        i64(row, "user_id"),
	}
	if dept, ok := row["id_departamento"].(int64); ok {
		b.DepartmentID = &dept
		b.DepartmentName = str(r.db.st.rows[movement.TableDepartments][dept], "name")
	}
	if d, ok := (deviceRepo{db: r.db}).device(b.DeviceID); ok {
		b.Brand, b.Model, b.SerialNumber, b.Category = d.Brand, d.Model, d.SerialNumber, d.CategoryName
	}
	return b, nil
}

func (r bajaRepo) Create(_ context.Context, b *entity.Baja) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, _ := movement.Lookup(movement.TableBajas)
	snap := movement.Snapshot{
		"folio": b.Folio, "fecha": b.Fecha, "motivo": b.Motivo, "detectado_por": b.DetectadoPor,
		"observaciones": b.Observaciones, "id_device": b.DeviceID, "user_id": b.UserID,
	}
	if b.DepartmentID != nil {
		snap["id_departamento"] = *b.DepartmentID
	}
	b.ID = r.db.st.insert(t, snap)
	return nil
}

func (r bajaRepo) IDsByDevice(_ context.Context, deviceID int64) ([]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []int64
	for id, row := range r.db.st.rows[movement.TableBajas] {
		if i64(row, "id_device") == deviceID {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type mantenimientoRepo struct {
	repository.MantenimientoRepository
	db *DB
}

func (r mantenimientoRepo) GetByID(_ context.Context, id int64) (*entity.Mantenimiento, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.st.rows[movement.TableMantenimientos][id]
	if !ok {
		return nil, notFound("mantenimiento", id)
	}
	respID := i64(row, "responsiva_id")
	return &entity.Mantenimiento{
		ID:                  id,
		Folio:               str(row, "folio"),
		Fecha:               tm(row, "fecha"),
		DescripcionFalla:    str(row, "descripcion_falla"),
		DescripcionSolucion: str(row, "descripcion_solucion"),
		UserID:              i64(row, "user_id"),
		ResponsivaID:        respID,
		Completo:            boolean(row, "completo"),
		Responsable:         str(r.db.st.rows[movement.TableResponsivas][respID], "responsable"),
	}, nil
}

func (r mantenimientoRepo) Create(_ context.Context, m *entity.Mantenimiento) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, _ := movement.Lookup(movement.TableMantenimientos)
	m.ID = r.db.st.insert(t, movement.Snapshot{
		"folio": m.Folio, "fecha": m.Fecha, "descripcion_falla": m.DescripcionFalla,
		"descripcion_solucion": m.DescripcionSolucion, "user_id": m.UserID,
		"responsiva_id": m.ResponsivaID, "completo": m.Completo,
	})
	return nil
}

type documentRepo struct{ db *DB }

func (r documentRepo) Add(_ context.Context, kind repository.DocumentKind, d *entity.Document) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.st.seq["documents"]++
	d.ID = r.db.st.seq["documents"]
	d.UploadedAt = r.db.now()
	if r.db.st.documents[kind] == nil {
		r.db.st.documents[kind] = map[int64]*entity.Document{}
	}
	c := *d
	r.db.st.documents[kind][d.ID] = &c
	return nil
}

func (r documentRepo) List(_ context.Context, kind repository.DocumentKind, ownerID int64) ([]*entity.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.db.st.documents[kind] {
		if d.OwnerID == ownerID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r documentRepo) Get(_ context.Context, kind repository.DocumentKind, ownerID, docID int64) (*entity.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.st.documents[kind][docID]
	if !ok || d.OwnerID != ownerID {
		return nil, notFound("documento", docID)
	}
	c := *d
	return &c, nil
}

func (r documentRepo) Delete(_ context.Context, kind repository.DocumentKind, docID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.st.documents[kind][docID]; !ok {
		return notFound("documento", docID)
	}
	delete(r.db.st.documents[kind], docID)
	return nil
}

func (r documentRepo) DeleteByOwner(_ context.Context, kind repository.DocumentKind, ownerID int64) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var names []string
	for id, d := range r.db.st.documents[kind] {
		if d.OwnerID == ownerID {
			names = append(names, d.StoredName)
			delete(r.db.st.documents[kind], id)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ─── Respaldos ──────────────────────────────────────────────────────────────

type backupRepo struct{ db *DB }

func (r backupRepo) GetActive(_ context.Context) (*entity.BackupSchedule, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := len(r.db.st.backups) - 1; i >= 0; i-- {
		if b := r.db.st.backups[i]; b.Status == entity.StatusActive {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("configuración de respaldo: %w", domain.ErrNotFound)
}

func (r backupRepo) Replace(_ context.Context, s *entity.BackupSchedule) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.st.backups {
		r.db.st.backups[i].Status = entity.StatusInactive
	}
	r.db.st.seq["backup_config"]++
	s.ID = r.db.st.seq["backup_config"]
	s.Status = entity.StatusActive
	r.db.st.backups = append(r.db.st.backups, *s)
	return nil
}

func (r backupRepo) MarkRun(_ context.Context, id int64, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.st.backups {
		if r.db.st.backups[i].ID == id {
			t := at
			r.db.st.backups[i].UltimoRespaldo = &t
			return nil
		}
	}
	return notFound("configuración de respaldo", id)
}
