package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

var _ repository.ColorVariantRepository = (*ColorVariantRepo)(nil)

// ColorVariantRepo implementación de ColorVariantRepository sobre PostgreSQL.
type ColorVariantRepo struct {
	q Querier
}

// NewColorVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewColorVariantRepository(q Querier) *ColorVariantRepo {
	return &ColorVariantRepo{q: q}
}

// Create persiste una variante de color.
func (r *ColorVariantRepo) Create(ctx context.Context, v *entity.ColorVariant) error {
	query := `
		INSERT INTO color_variants (id, name, hex_code, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, v.ID, v.Name, v.HexCode, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create color variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID; nil si no existe.
func (r *ColorVariantRepo) GetByID(ctx context.Context, id string) (*entity.ColorVariant, error) {
	query := `SELECT id, name, hex_code, created_at FROM color_variants WHERE id = $1`
	var v entity.ColorVariant
	err := r.q.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.HexCode, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get color variant: %w", err)
	}
	return &v, nil
}

// List lista todas las variantes ordenadas por nombre.
func (r *ColorVariantRepo) List(ctx context.Context) ([]*entity.ColorVariant, error) {
	query := `SELECT id, name, hex_code, created_at FROM color_variants ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list color variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ColorVariant
	for rows.Next() {
		var v entity.ColorVariant
		if err := rows.Scan(&v.ID, &v.Name, &v.HexCode, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan color variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
