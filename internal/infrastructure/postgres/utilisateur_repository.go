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

var _ repository.UtilisateurRepository = (*UtilisateurRepo)(nil)

// UtilisateurRepo implémentation de UtilisateurRepository (utilisable avec pool ou tx).
type UtilisateurRepo struct {
	q Querier
}

// NewUtilisateurRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUtilisateurRepository(q Querier) *UtilisateurRepo {
	return &UtilisateurRepo{q: q}
}

// Create persiste un utilisateur. Email déjà pris = ErrDuplicate.
func (r *UtilisateurRepo) Create(u *entity.Utilisateur) error {
	query := `
		INSERT INTO utilisateurs (id, nom, email, password_hash, date_creation)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Nom, u.Email, u.PasswordHash, u.DateCreation)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert utilisateur: %w", err)
	}
	return nil
}

// GetByID obtient un utilisateur par ID.
func (r *UtilisateurRepo) GetByID(id string) (*entity.Utilisateur, error) {
	query := `SELECT id, nom, email, password_hash, date_creation FROM utilisateurs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get utilisateur")
}

// GetByEmail obtient un utilisateur par email.
func (r *UtilisateurRepo) GetByEmail(email string) (*entity.Utilisateur, error) {
	query := `SELECT id, nom, email, password_hash, date_creation FROM utilisateurs WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get utilisateur by email")
}

func (r *UtilisateurRepo) scanOne(row pgx.Row, op string) (*entity.Utilisateur, error) {
	var u entity.Utilisateur
	err := row.Scan(&u.ID, &u.Nom, &u.Email, &u.PasswordHash, &u.DateCreation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
