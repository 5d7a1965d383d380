package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	"github.com/jmkadima/facturier-api/pkg/strutil"
)

// ClientUseCase CRUD des clients.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crée un client (personne par défaut).
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Nom == "" {
		return nil, domain.ErrInvalidInput
	}
	typeClient := in.TypeClient
	if typeClient == "" {
		typeClient = entity.ClientPersonne
	}
	if typeClient != entity.ClientPersonne && typeClient != entity.ClientEntreprise {
		return nil, domain.ErrInvalidInput
	}
	client := &entity.Client{
		ID:           uuid.New().String(),
		TypeClient:   typeClient,
		Nom:          in.Nom,
		Prenom:       in.Prenom,
		Quartier:     in.Quartier,
		Avenue:       in.Avenue,
		Numero:       in.Numero,
		NIF:          in.NIF,
		Telephone:    in.Telephone,
		Email:        in.Email,
		DateCreation: time.Now(),
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// GetByID renvoie un client, nil s'il n'existe pas.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return ToClientResponse(client), nil
}

// List renvoie une page de clients filtrée par un terme de recherche
// insensible aux accents (nom ou prénom).
func (uc *ClientUseCase) List(recherche string, limit, offset int) (*dto.ClientListResponse, error) {
	recherche = strutil.NormaliserRecherche(recherche)
	clients, err := uc.repo.List(recherche, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(recherche)
	if err != nil {
		return nil, err
	}
	resp := &dto.ClientListResponse{
		Items: make([]dto.ClientResponse, 0, len(clients)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, c := range clients {
		resp.Items = append(resp.Items, *ToClientResponse(c))
	}
	return resp, nil
}

// Update met à jour les champs fournis.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.TypeClient != nil {
		if *in.TypeClient != entity.ClientPersonne && *in.TypeClient != entity.ClientEntreprise {
			return nil, domain.ErrInvalidInput
		}
		client.TypeClient = *in.TypeClient
	}
	if in.Nom != nil {
		client.Nom = *in.Nom
	}
	if in.Prenom != nil {
		client.Prenom = *in.Prenom
	}
	if in.Quartier != nil {
		client.Quartier = *in.Quartier
	}
	if in.Avenue != nil {
		client.Avenue = *in.Avenue
	}
	if in.Numero != nil {
		client.Numero = *in.Numero
	}
	if in.NIF != nil {
		client.NIF = *in.NIF
	}
	if in.Telephone != nil {
		client.Telephone = *in.Telephone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// ToClientResponse convertit l'entité en vue API.
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:           c.ID,
		TypeClient:   c.TypeClient,
		Nom:          c.Nom,
		Prenom:       c.Prenom,
		DisplayName:  c.DisplayName(),
		Quartier:     c.Quartier,
		Avenue:       c.Avenue,
		Numero:       c.Numero,
		NIF:          c.NIF,
		Telephone:    c.Telephone,
		Email:        c.Email,
		DateCreation: c.DateCreation,
	}
}
