// Package pdf genera los formatos impresos del inventario: responsiva de
// resguardo, reporte de baja y orden de mantenimiento.
//
// Layout común (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del formato   │  Folio + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: responsable / departamento / equipo                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUERPO: tabla de equipos o descripciones                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

var _ ports.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	organization string
}

// NewMarotoPDFGenerator construye el generador; organization aparece en el encabezado.
func NewMarotoPDFGenerator(organization string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{organization: organization}
}

// ResponsivaPDF formato de resguardo con la tabla de equipos asignados.
func (g *MarotoPDFGenerator) ResponsivaPDF(_ context.Context, r *entity.Responsiva) ([]byte, error) {
	m := g.newDocument("Responsiva " + r.Folio)

	m.AddRows(g.headerRow("RESPONSIVA DE EQUIPO DE CÓMPUTO", r.Folio, r.Fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fieldsRow(
		field{"Responsable", r.Responsable},
		field{"Departamento", r.DepartmentName},
		field{"Área", r.AreaName},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		header{"No", 1, align.Center},
		header{"Equipo", 3, align.Left},
		header{"Marca", 2, align.Left},
		header{"Modelo", 2, align.Left},
		header{"No. de serie", 4, align.Left},
	))
	for i, d := range r.Devices {
		m.AddRows(row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(d.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(d.Brand, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(d.Model, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(d.SerialNumber, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}

	m.AddRows(legendRow("El responsable se compromete a hacer buen uso del equipo descrito " +
		"y a devolverlo en las condiciones en que lo recibe."))
	m.AddRows(signatureRows("Entrega", "Recibe: "+r.Responsable)...)
	return generate(m)
}

// BajaPDF reporte de baja de un equipo.
func (g *MarotoPDFGenerator) BajaPDF(_ context.Context, b *entity.Baja) ([]byte, error) {
	m := g.newDocument("Baja " + b.Folio)

	m.AddRows(g.headerRow("REPORTE DE BAJA DE EQUIPO", b.Folio, b.Fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fieldsRow(
		field{"Nombre del equipo", b.Category},
		field{"Departamento", nonEmpty(b.DepartmentName, "—")},
	))
	m.AddRows(fieldsRow(
		field{"Marca", b.Brand},
		field{"Modelo", b.Model},
		field{"No. de serie", b.SerialNumber},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paragraphRows("MOTIVO DE LA BAJA", b.Motivo)...)
	m.AddRows(paragraphRows("¿CÓMO SE DETECTÓ?", nonEmpty(b.DetectadoPor, "—"))...)
	m.AddRows(paragraphRows("OBSERVACIONES", nonEmpty(b.Observaciones, "—"))...)
	m.AddRows(signatureRows("Elaboró: "+nonEmpty(b.Username, "—"), "Autorizó")...)
	return generate(m)
}

// MantenimientoPDF orden de servicio sobre los equipos de una responsiva.
func (g *MarotoPDFGenerator) MantenimientoPDF(_ context.Context, mt *entity.Mantenimiento) ([]byte, error) {
	m := g.newDocument("Mantenimiento " + mt.Folio)

	estado := "PENDIENTE"
	if mt.Completo {
		estado = "COMPLETO"
	}
	m.AddRows(g.headerRow("ORDEN DE MANTENIMIENTO", mt.Folio, mt.Fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fieldsRow(
		field{"Usuario del equipo", mt.Responsable},
		field{"Departamento", mt.Departamento},
		field{"Técnico", mt.Username},
	))
	m.AddRows(fieldsRow(field{"Estado del servicio", estado}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paragraphRows("DESCRIPCIÓN DE LA FALLA", nonEmpty(mt.DescripcionFalla, "—"))...)
	m.AddRows(paragraphRows("DESCRIPCIÓN DE LA SOLUCIÓN", nonEmpty(mt.DescripcionSolucion, "—"))...)
	m.AddRows(signatureRows("Técnico: "+mt.Username, "Usuario: "+mt.Responsable)...)
	return generate(m)
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.organization, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización + título (izq) y folio + fecha (der).
func (g *MarotoPDFGenerator) headerRow(title, folio string, fecha time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.organization, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FOLIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

type field struct {
	label string
	value string
}

// fieldsRow reparte las etiquetas en columnas iguales.
func fieldsRow(fields ...field) core.Row {
	size := 12 / len(fields)
	cols := make([]core.Col, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, col.New(size).Add(
			text.New(f.label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(f.value, props.Text{Size: 9, Top: 6}),
		))
	}
	return row.New(13).Add(cols...)
}

type header struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo primario.
func tableHeaderRow(headers ...header) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

func paragraphRows(title, body string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		text.NewRow(14, body, props.Text{Size: 9, Top: 1, Left: 2}),
	}
}

func legendRow(s string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 7, Color: colorGray, Top: 4}),
	))
}

// signatureRows: dos líneas de firma centradas.
func signatureRows(left, right string) []core.Row {
	sig := func(label string) core.Col {
		return col.New(5).Add(
			line.New(props.Line{Color: colorGray, Thickness: 0.3, OffsetPercent: 70}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 16}),
		)
	}
	return []core.Row{
		row.New(20),
		row.New(22).Add(sig(left), col.New(2), sig(right)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
