package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// MouvementStockRepository port de persistance pour les mouvements de stock.
// Append-only : pas d'Update ni de Delete, un mouvement ne se corrige que par
// un mouvement inverse.
type MouvementStockRepository interface {
	Create(mouvement *entity.MouvementStock) error
	// ListByProduit renvoie l'historique du produit, plus récent en premier.
	ListByProduit(produitID string) ([]*entity.MouvementStock, error)
	HasForProduit(produitID string) (bool, error)
}
