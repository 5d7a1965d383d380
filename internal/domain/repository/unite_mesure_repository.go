package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// UniteMesureRepository port de persistance pour UniteMesure.
type UniteMesureRepository interface {
	Create(unite *entity.UniteMesure) error
	GetByID(id string) (*entity.UniteMesure, error)
	List() ([]*entity.UniteMesure, error)
	Update(unite *entity.UniteMesure) error
	Delete(id string) error
	HasProduits(id string) (bool, error)
}
