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

var _ repository.ProduitRepository = (*ProduitRepo)(nil)

const colonnesProduit = `id, nom, code, categorie_id, unite_mesure_id, tva, tc, pf,
	stockable, pv_ttc, pru, stock_actuel, stock_minimum, date_creation`

// ProduitRepo implémentation de ProduitRepository (utilisable avec pool ou tx).
type ProduitRepo struct {
	q Querier
}

// NewProduitRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewProduitRepository(q Querier) *ProduitRepo {
	return &ProduitRepo{q: q}
}

// Create persiste un nouveau produit.
func (r *ProduitRepo) Create(p *entity.Produit) error {
	query := `
		INSERT INTO produits (` + colonnesProduit + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nom, p.Code, p.CategorieID, p.UniteMesureID, p.TVA, p.TC, p.PF,
		p.Stockable, p.PVTTC, p.PRU, p.StockActuel, p.StockMinimum, p.DateCreation,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produit: %w", err)
	}
	return nil
}

// GetByID obtient un produit par ID.
func (r *ProduitRepo) GetByID(id string) (*entity.Produit, error) {
	query := `SELECT ` + colonnesProduit + ` FROM produits WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get produit")
}

// GetByCode obtient un produit par code.
func (r *ProduitRepo) GetByCode(code string) (*entity.Produit, error) {
	query := `SELECT ` + colonnesProduit + ` FROM produits WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get produit by code")
}

// GetForUpdate obtient un produit en verrouillant sa ligne (SELECT FOR UPDATE).
func (r *ProduitRepo) GetForUpdate(id string) (*entity.Produit, error) {
	query := `SELECT ` + colonnesProduit + ` FROM produits WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get produit for update")
}

// Update met à jour un produit. Le stock actuel n'est pas touché ici.
func (r *ProduitRepo) Update(p *entity.Produit) error {
	query := `
		UPDATE produits SET nom = $2, code = $3, categorie_id = $4, unite_mesure_id = $5,
			tva = $6, tc = $7, pf = $8, stockable = $9, pv_ttc = $10, pru = $11,
			stock_minimum = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nom, p.Code, p.CategorieID, p.UniteMesureID,
		p.TVA, p.TC, p.PF, p.Stockable, p.PVTTC, p.PRU, p.StockMinimum,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update produit: %w", err)
	}
	return nil
}

// UpdateStock écrit le stock dérivé du grand livre. Réservé au cas d'usage
// stock, dans la même transaction que l'insertion du mouvement.
func (r *ProduitRepo) UpdateStock(id string, stockActuel int64) error {
	query := `UPDATE produits SET stock_actuel = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stockActuel)
	if err != nil {
		return fmt.Errorf("update stock produit: %w", err)
	}
	return nil
}

// List liste les produits avec pagination, filtrés par un terme (nom ou code)
// insensible aux accents.
func (r *ProduitRepo) List(recherche string, limit, offset int) ([]*entity.Produit, error) {
	query := `
		SELECT ` + colonnesProduit + `
		FROM produits
		WHERE $1 = '' OR unaccent(lower(nom)) LIKE '%' || $1 || '%' OR lower(code) LIKE '%' || $1 || '%'
		ORDER BY nom
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, recherche, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list produits: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Count compte les produits correspondant au terme de recherche.
func (r *ProduitRepo) Count(recherche string) (int, error) {
	query := `
		SELECT COUNT(*) FROM produits
		WHERE $1 = '' OR unaccent(lower(nom)) LIKE '%' || $1 || '%' OR lower(code) LIKE '%' || $1 || '%'`
	var n int
	if err := r.q.QueryRow(context.Background(), query, recherche).Scan(&n); err != nil {
		return 0, fmt.Errorf("count produits: %w", err)
	}
	return n, nil
}

// ListStockables liste les produits stockables, pour l'état du stock.
func (r *ProduitRepo) ListStockables() ([]*entity.Produit, error) {
	query := `SELECT ` + colonnesProduit + ` FROM produits WHERE stockable ORDER BY nom`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list produits stockables: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete supprime un produit.
func (r *ProduitRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM produits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produit: %w", err)
	}
	return nil
}

func (r *ProduitRepo) scanOne(row pgx.Row, op string) (*entity.Produit, error) {
	var p entity.Produit
	err := row.Scan(
		&p.ID, &p.Nom, &p.Code, &p.CategorieID, &p.UniteMesureID, &p.TVA, &p.TC, &p.PF,
		&p.Stockable, &p.PVTTC, &p.PRU, &p.StockActuel, &p.StockMinimum, &p.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProduitRepo) scanAll(rows pgx.Rows) ([]*entity.Produit, error) {
	var list []*entity.Produit
	for rows.Next() {
		var p entity.Produit
		if err := rows.Scan(
			&p.ID, &p.Nom, &p.Code, &p.CategorieID, &p.UniteMesureID, &p.TVA, &p.TC, &p.PF,
			&p.Stockable, &p.PVTTC, &p.PRU, &p.StockActuel, &p.StockMinimum, &p.DateCreation,
		); err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
