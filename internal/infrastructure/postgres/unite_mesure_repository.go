package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

var _ repository.UniteMesureRepository = (*UniteMesureRepo)(nil)

// UniteMesureRepo implémentation de UniteMesureRepository (utilisable avec pool ou tx).
type UniteMesureRepo struct {
	q Querier
}

// NewUniteMesureRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUniteMesureRepository(q Querier) *UniteMesureRepo {
	return &UniteMesureRepo{q: q}
}

// Create persiste une unité de mesure. Nom déjà pris = ErrDuplicate.
func (r *UniteMesureRepo) Create(u *entity.UniteMesure) error {
	query := `
		INSERT INTO unites_mesure (id, nom, symbole, description, date_creation)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Nom, u.Symbole, u.Description, u.DateCreation)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unite: %w", err)
	}
	return nil
}

// GetByID obtient une unité par ID.
func (r *UniteMesureRepo) GetByID(id string) (*entity.UniteMesure, error) {
	query := `SELECT id, nom, symbole, description, date_creation FROM unites_mesure WHERE id = $1`
	var u entity.UniteMesure
	err := r.q.QueryRow(context.Background(), query, id).Scan(&u.ID, &u.Nom, &u.Symbole, &u.Description, &u.DateCreation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unite: %w", err)
	}
	return &u, nil
}

// List liste toutes les unités par nom.
func (r *UniteMesureRepo) List() ([]*entity.UniteMesure, error) {
	query := `SELECT id, nom, symbole, description, date_creation FROM unites_mesure ORDER BY nom`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unites: %w", err)
	}
	defer rows.Close()
	var list []*entity.UniteMesure
	for rows.Next() {
		var u entity.UniteMesure
		if err := rows.Scan(&u.ID, &u.Nom, &u.Symbole, &u.Description, &u.DateCreation); err != nil {
			return nil, fmt.Errorf("scan unite: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update met à jour une unité.
func (r *UniteMesureRepo) Update(u *entity.UniteMesure) error {
	query := `UPDATE unites_mesure SET nom = $2, symbole = $3, description = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Nom, u.Symbole, u.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unite: %w", err)
	}
	return nil
}

// Delete supprime une unité.
func (r *UniteMesureRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM unites_mesure WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unite: %w", err)
	}
	return nil
}

// HasProduits indique si des produits référencent l'unité.
func (r *UniteMesureRepo) HasProduits(id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM produits WHERE unite_mesure_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("has produits unite: %w", err)
	}
	return exists, nil
}
