package postgres

import (
	"context"
	"fmt"

	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

var _ repository.MouvementStockRepository = (*MouvementStockRepo)(nil)

// MouvementStockRepo implémentation append-only de MouvementStockRepository :
// aucune méthode d'update ni de delete, le grand livre ne se réécrit pas.
type MouvementStockRepo struct {
	q Querier
}

// NewMouvementStockRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewMouvementStockRepository(q Querier) *MouvementStockRepo {
	return &MouvementStockRepo{q: q}
}

// Create insère un mouvement. reference_type et reference_id sont NULL pour un
// mouvement sans origine.
func (r *MouvementStockRepo) Create(m *entity.MouvementStock) error {
	query := `
		INSERT INTO mouvements_stock (id, produit_id, type_mouvement, quantite,
			stock_avant, stock_apres, reference_type, reference_id, commentaire,
			utilisateur, date_mouvement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var refType, refID *string
	if m.Reference.Type != "" {
		t := string(m.Reference.Type)
		refType = &t
	}
	if m.Reference.ID != "" {
		refID = &m.Reference.ID
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProduitID, m.TypeMouvement, m.Quantite,
		m.StockAvant, m.StockApres, refType, refID, m.Commentaire,
		m.Utilisateur, m.DateMouvement,
	)
	if err != nil {
		return fmt.Errorf("insert mouvement: %w", err)
	}
	return nil
}

// ListByProduit renvoie l'historique d'un produit, plus récent en premier.
func (r *MouvementStockRepo) ListByProduit(produitID string) ([]*entity.MouvementStock, error) {
	query := `
		SELECT id, produit_id, type_mouvement, quantite, stock_avant, stock_apres,
			reference_type, reference_id, commentaire, utilisateur, date_mouvement
		FROM mouvements_stock
		WHERE produit_id = $1
		ORDER BY date_mouvement DESC`
	rows, err := r.q.Query(context.Background(), query, produitID)
	if err != nil {
		return nil, fmt.Errorf("list mouvements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MouvementStock
	for rows.Next() {
		var m entity.MouvementStock
		var refType, refID *string
		if err := rows.Scan(
			&m.ID, &m.ProduitID, &m.TypeMouvement, &m.Quantite, &m.StockAvant, &m.StockApres,
			&refType, &refID, &m.Commentaire, &m.Utilisateur, &m.DateMouvement,
		); err != nil {
			return nil, fmt.Errorf("scan mouvement: %w", err)
		}
		if refType != nil {
			m.Reference.Type = entity.TypeReference(*refType)
		}
		if refID != nil {
			m.Reference.ID = *refID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// HasForProduit indique si un produit a au moins un mouvement.
func (r *MouvementStockRepo) HasForProduit(produitID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM mouvements_stock WHERE produit_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, produitID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has mouvements: %w", err)
	}
	return exists, nil
}
