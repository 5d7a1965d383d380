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

var _ repository.CategorieRepository = (*CategorieRepo)(nil)

// CategorieRepo implémentation de CategorieRepository (utilisable avec pool ou tx).
type CategorieRepo struct {
	q Querier
}

// NewCategorieRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCategorieRepository(q Querier) *CategorieRepo {
	return &CategorieRepo{q: q}
}

// Create persiste une catégorie. Nom déjà pris = ErrDuplicate.
func (r *CategorieRepo) Create(c *entity.Categorie) error {
	query := `
		INSERT INTO categories (id, nom, description, date_creation)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nom, c.Description, c.DateCreation)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categorie: %w", err)
	}
	return nil
}

// GetByID obtient une catégorie par ID.
func (r *CategorieRepo) GetByID(id string) (*entity.Categorie, error) {
	query := `SELECT id, nom, description, date_creation FROM categories WHERE id = $1`
	var c entity.Categorie
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Nom, &c.Description, &c.DateCreation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categorie: %w", err)
	}
	return &c, nil
}

// List liste toutes les catégories par nom.
func (r *CategorieRepo) List() ([]*entity.Categorie, error) {
	query := `SELECT id, nom, description, date_creation FROM categories ORDER BY nom`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categorie
	for rows.Next() {
		var c entity.Categorie
		if err := rows.Scan(&c.ID, &c.Nom, &c.Description, &c.DateCreation); err != nil {
			return nil, fmt.Errorf("scan categorie: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update met à jour une catégorie.
func (r *CategorieRepo) Update(c *entity.Categorie) error {
	query := `UPDATE categories SET nom = $2, description = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nom, c.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categorie: %w", err)
	}
	return nil
}

// Delete supprime une catégorie.
func (r *CategorieRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categorie: %w", err)
	}
	return nil
}

// HasProduits indique si des produits référencent la catégorie.
func (r *CategorieRepo) HasProduits(id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM produits WHERE categorie_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("has produits categorie: %w", err)
	}
	return exists, nil
}
