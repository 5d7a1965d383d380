package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// ClientRepository port de persistance pour Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(recherche string, limit, offset int) ([]*entity.Client, error)
	Count(recherche string) (int, error)
	ListAll() ([]*entity.Client, error)
	Update(client *entity.Client) error
}
