package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// ProduitRepository port de persistance pour Produit.
// UpdateStock est réservé au grand livre de stock (application/stock) et doit
// être appelé dans la même transaction que l'insertion du mouvement.
type ProduitRepository interface {
	Create(produit *entity.Produit) error
	GetByID(id string) (*entity.Produit, error)
	GetByCode(code string) (*entity.Produit, error)
	// GetForUpdate lit le produit en verrouillant sa ligne (SELECT ... FOR UPDATE).
	// À n'utiliser que dans une transaction.
	GetForUpdate(id string) (*entity.Produit, error)
	Update(produit *entity.Produit) error
	UpdateStock(id string, stockActuel int64) error
	List(recherche string, limit, offset int) ([]*entity.Produit, error)
	Count(recherche string) (int, error)
	ListStockables() ([]*entity.Produit, error)
	Delete(id string) error
}
