package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const colonnesClient = `id, type_client, nom, prenom, quartier, avenue, numero,
	nif, telephone, email, date_creation`

// ClientRepo implémentation de ClientRepository (utilisable avec pool ou tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un client.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (` + colonnesClient + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TypeClient, c.Nom, c.Prenom, c.Quartier, c.Avenue, c.Numero,
		c.NIF, c.Telephone, c.Email, c.DateCreation,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtient un client par ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + colonnesClient + ` FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.TypeClient, &c.Nom, &c.Prenom, &c.Quartier, &c.Avenue, &c.Numero,
		&c.NIF, &c.Telephone, &c.Email, &c.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List liste les clients avec pagination, filtrés par un terme (nom ou prénom)
// insensible aux accents.
func (r *ClientRepo) List(recherche string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + colonnesClient + `
		FROM clients
		WHERE $1 = '' OR unaccent(lower(nom)) LIKE '%' || $1 || '%' OR unaccent(lower(prenom)) LIKE '%' || $1 || '%'
		ORDER BY nom, prenom
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, recherche, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Count compte les clients correspondant au terme de recherche.
func (r *ClientRepo) Count(recherche string) (int, error) {
	query := `
		SELECT COUNT(*) FROM clients
		WHERE $1 = '' OR unaccent(lower(nom)) LIKE '%' || $1 || '%' OR unaccent(lower(prenom)) LIKE '%' || $1 || '%'`
	var n int
	if err := r.q.QueryRow(context.Background(), query, recherche).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// ListAll liste tous les clients, pour les rapports.
func (r *ClientRepo) ListAll() ([]*entity.Client, error) {
	query := `SELECT ` + colonnesClient + ` FROM clients ORDER BY nom, prenom`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all clients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update met à jour un client.
func (r *ClientRepo) Update(c *entity.Client) error {
	query := `
		UPDATE clients SET type_client = $2, nom = $3, prenom = $4, quartier = $5,
			avenue = $6, numero = $7, nif = $8, telephone = $9, email = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TypeClient, c.Nom, c.Prenom, c.Quartier,
		c.Avenue, c.Numero, c.NIF, c.Telephone, c.Email,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepo) scanAll(rows pgx.Rows) ([]*entity.Client, error) {
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.TypeClient, &c.Nom, &c.Prenom, &c.Quartier, &c.Avenue, &c.Numero,
			&c.NIF, &c.Telephone, &c.Email, &c.DateCreation,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
