package usecase

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

const (
	minSearchLen = 2
	searchLimit  = 50
)

// SearchUseCase búsqueda global por texto.
type SearchUseCase struct {
	repo repository.SearchRepository
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(repo repository.SearchRepository) *SearchUseCase {
	return &SearchUseCase{repo: repo}
}

// Search busca en equipos (incluidos sus campos personalizados), categorías,
// departamentos, pisos, áreas y accesorios. Consultas muy cortas no buscan.
func (uc *SearchUseCase) Search(ctx context.Context, q string) ([]dto.SearchResultResponse, error) {
	q = strings.TrimSpace(q)
	out := []dto.SearchResultResponse{}
	if utf8.RuneCountInString(q) < minSearchLen {
		return out, nil
	}
	results, err := uc.repo.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		out = append(out, dto.SearchResultResponse{Type: r.Type, ID: r.ID, Title: r.Title, Detail: r.Detail})
	}
	return out, nil
}

// LocationUseCase árbol de ubicaciones de los equipos asignados.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Tree pisos → áreas → equipos; departmentID 0 no filtra.
func (uc *LocationUseCase) Tree(ctx context.Context, departmentID int64) ([]dto.FloorLocationResponse, error) {
	floors, err := uc.repo.Tree(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FloorLocationResponse, 0, len(floors))
	for _, f := range floors {
		out = append(out, toFloorLocation(f))
	}
	return out, nil
}

func toFloorLocation(f *entity.FloorLocation) dto.FloorLocationResponse {
	resp := dto.FloorLocationResponse{ID: f.ID, Name: f.Name, Areas: make([]dto.AreaLocationResponse, 0, len(f.Areas))}
	for _, a := range f.Areas {
		area := dto.AreaLocationResponse{ID: a.ID, Name: a.Name, Devices: make([]dto.LocatedDeviceResponse, 0, len(a.Devices))}
		for _, d := range a.Devices {
			area.Devices = append(area.Devices, dto.LocatedDeviceResponse{
				ID:                 d.ID,
				Brand:              d.Brand,
				Model:              d.Model,
				SerialNumber:       d.SerialNumber,
				CategoryID:         d.CategoryID,
				Category:           d.Category,
				Responsable:        d.Responsable,
				Departamento:       d.Departamento,
				Folio:              d.Folio,
				ResponsivaID:       d.ResponsivaID,
				UltimoMant:         d.UltimoMant,
				UltimoMantCompleto: d.UltimoMantCompleto,
			})
		}
		resp.Areas = append(resp.Areas, area)
	}
	return resp
}

// FormatUseCase formatos en blanco descargables.
type FormatUseCase struct {
	files ports.FileStorage
}

// NewFormatUseCase files debe tener como raíz el directorio de formatos.
func NewFormatUseCase(files ports.FileStorage) *FormatUseCase {
	return &FormatUseCase{files: files}
}

// Open abre el formato; nombres con separadores o ".." se rechazan.
func (uc *FormatUseCase) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	return uc.files.Open(ctx, ".", filename)
}
