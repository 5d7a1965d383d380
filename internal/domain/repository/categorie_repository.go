package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// CategorieRepository port de persistance pour Categorie.
type CategorieRepository interface {
	Create(categorie *entity.Categorie) error
	GetByID(id string) (*entity.Categorie, error)
	List() ([]*entity.Categorie, error)
	Update(categorie *entity.Categorie) error
	Delete(id string) error
	HasProduits(id string) (bool, error)
}
