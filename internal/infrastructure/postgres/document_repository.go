package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos escaneados de responsivas (responsiva_documentos) y bajas (baja_documentos).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// documentTable tabla y columna dueña para cada tipo.
func documentTable(kind repository.DocumentKind) (table, owner string, err error) {
	switch kind {
	case repository.DocumentsResponsiva:
		return "responsiva_documentos", "id_responsiva", nil
	case repository.DocumentsBaja:
		return "baja_documentos", "id_baja", nil
	}
	return "", "", fmt.Errorf("tipo de documento %q: %w", kind, domain.ErrInvalidInput)
}

// Add registra el documento ya guardado en disco.
func (r *DocumentRepo) Add(ctx context.Context, kind repository.DocumentKind, d *entity.Document) error {
	table, owner, err := documentTable(kind)
	if err != nil {
		return err
	}
	err = r.q.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, nombre_archivo, ruta_archivo, user_id)
		VALUES ($1, $2, $3, $4) RETURNING id, fecha_subida`, table, owner),
		d.OwnerID, d.OriginalName, d.StoredName, nullableID(d.UserID)).Scan(&d.ID, &d.UploadedAt)
	return mapWriteErr("insert document", err, nil)
}

// List documentos del dueño, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, kind repository.DocumentKind, ownerID int64) ([]*entity.Document, error) {
	table, owner, err := documentTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, fmt.Sprintf(`
		SELECT id, %[2]s, nombre_archivo, ruta_archivo, COALESCE(user_id, 0), fecha_subida
		FROM %[1]s WHERE %[2]s = $1 ORDER BY fecha_subida DESC, id DESC`, table, owner), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Get documento que pertenece al dueño indicado.
func (r *DocumentRepo) Get(ctx context.Context, kind repository.DocumentKind, ownerID, docID int64) (*entity.Document, error) {
	table, owner, err := documentTable(kind)
	if err != nil {
		return nil, err
	}
	d, err := scanDocument(r.q.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, %[2]s, nombre_archivo, ruta_archivo, COALESCE(user_id, 0), fecha_subida
		FROM %[1]s WHERE id = $1 AND %[2]s = $2`, table, owner), docID, ownerID))
	if err != nil {
		return nil, notFound("get document", err)
	}
	return d, nil
}

// Delete elimina el registro del documento.
func (r *DocumentRepo) Delete(ctx context.Context, kind repository.DocumentKind, docID int64) error {
	table, _, err := documentTable(kind)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), docID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("delete document", pgx.ErrNoRows)
	}
	return nil
}

// DeleteByOwner elimina los documentos del dueño y devuelve los archivos a borrar de disco.
func (r *DocumentRepo) DeleteByOwner(ctx context.Context, kind repository.DocumentKind, ownerID int64) ([]string, error) {
	table, owner, err := documentTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING ruta_archivo`, table, owner), ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete documents: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.OwnerID, &d.OriginalName, &d.StoredName, &d.UserID, &d.UploadedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
