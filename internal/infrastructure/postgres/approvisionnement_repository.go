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

var _ repository.ApprovisionnementRepository = (*ApprovisionnementRepo)(nil)

const colonnesAppro = `id, numero, date_approvisionnement, fournisseur, reference_fournisseur,
	statut, total_ht, total_ttc, notes, date_creation`

// ApprovisionnementRepo implémentation de ApprovisionnementRepository
// (utilisable avec pool ou tx).
type ApprovisionnementRepo struct {
	q Querier
}

// NewApprovisionnementRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewApprovisionnementRepository(q Querier) *ApprovisionnementRepo {
	return &ApprovisionnementRepo{q: q}
}

// Create persiste l'en-tête d'un approvisionnement. Numéro déjà pris = ErrDuplicate.
func (r *ApprovisionnementRepo) Create(a *entity.Approvisionnement) error {
	query := `
		INSERT INTO approvisionnements (` + colonnesAppro + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Numero, a.DateApprovisionnement, a.Fournisseur, a.ReferenceFournisseur,
		a.Statut, a.TotalHT, a.TotalTTC, a.Notes, a.DateCreation,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert approvisionnement: %w", err)
	}
	return nil
}

// CreateLigne persiste une ligne d'approvisionnement.
func (r *ApprovisionnementRepo) CreateLigne(l *entity.LigneApprovisionnement) error {
	query := `
		INSERT INTO lignes_approvisionnement (id, approvisionnement_id, produit_id,
			quantite, prix_unitaire_ht, prix_unitaire_ttc, tva)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ApprovisionnementID, l.ProduitID,
		l.Quantite, l.PrixUnitaireHT, l.PrixUnitaireTTC, l.TVA,
	)
	if err != nil {
		return fmt.Errorf("insert ligne approvisionnement: %w", err)
	}
	return nil
}

// GetByID obtient un approvisionnement par ID.
func (r *ApprovisionnementRepo) GetByID(id string) (*entity.Approvisionnement, error) {
	query := `SELECT ` + colonnesAppro + ` FROM approvisionnements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get approvisionnement")
}

// GetForUpdate obtient un approvisionnement en verrouillant sa ligne
// (SELECT FOR UPDATE), pour garder le garde-fou de statut sous verrou.
func (r *ApprovisionnementRepo) GetForUpdate(id string) (*entity.Approvisionnement, error) {
	query := `SELECT ` + colonnesAppro + ` FROM approvisionnements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get approvisionnement for update")
}

// GetLignes renvoie les lignes d'un approvisionnement.
func (r *ApprovisionnementRepo) GetLignes(approID string) ([]*entity.LigneApprovisionnement, error) {
	query := `
		SELECT id, approvisionnement_id, produit_id, quantite, prix_unitaire_ht, prix_unitaire_ttc, tva
		FROM lignes_approvisionnement WHERE approvisionnement_id = $1`
	rows, err := r.q.Query(context.Background(), query, approID)
	if err != nil {
		return nil, fmt.Errorf("get lignes approvisionnement: %w", err)
	}
	defer rows.Close()
	var list []*entity.LigneApprovisionnement
	for rows.Next() {
		var l entity.LigneApprovisionnement
		if err := rows.Scan(
			&l.ID, &l.ApprovisionnementID, &l.ProduitID,
			&l.Quantite, &l.PrixUnitaireHT, &l.PrixUnitaireTTC, &l.TVA,
		); err != nil {
			return nil, fmt.Errorf("scan ligne approvisionnement: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateStatut change le statut d'un approvisionnement.
func (r *ApprovisionnementRepo) UpdateStatut(id, statut string) error {
	query := `UPDATE approvisionnements SET statut = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, statut)
	if err != nil {
		return fmt.Errorf("update statut approvisionnement: %w", err)
	}
	return nil
}

// List liste les approvisionnements, plus récent en premier.
func (r *ApprovisionnementRepo) List(limit, offset int) ([]*entity.Approvisionnement, error) {
	query := `
		SELECT ` + colonnesAppro + `
		FROM approvisionnements
		ORDER BY date_approvisionnement DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list approvisionnements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Approvisionnement
	for rows.Next() {
		var a entity.Approvisionnement
		if err := rows.Scan(
			&a.ID, &a.Numero, &a.DateApprovisionnement, &a.Fournisseur, &a.ReferenceFournisseur,
			&a.Statut, &a.TotalHT, &a.TotalTTC, &a.Notes, &a.DateCreation,
		); err != nil {
			return nil, fmt.Errorf("scan approvisionnement: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Count compte les approvisionnements.
func (r *ApprovisionnementRepo) Count() (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM approvisionnements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count approvisionnements: %w", err)
	}
	return n, nil
}

// DernierNumero renvoie le plus grand numéro existant pour un préfixe, vide si aucun.
func (r *ApprovisionnementRepo) DernierNumero(prefixe string) (string, error) {
	query := `
		SELECT numero FROM approvisionnements
		WHERE numero LIKE $1 || '%'
		ORDER BY length(numero) DESC, numero DESC
		LIMIT 1`
	var numero string
	err := r.q.QueryRow(context.Background(), query, prefixe).Scan(&numero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("dernier numero approvisionnement: %w", err)
	}
	return numero, nil
}

func (r *ApprovisionnementRepo) scanOne(row pgx.Row, op string) (*entity.Approvisionnement, error) {
	var a entity.Approvisionnement
	err := row.Scan(
		&a.ID, &a.Numero, &a.DateApprovisionnement, &a.Fournisseur, &a.ReferenceFournisseur,
		&a.Statut, &a.TotalHT, &a.TotalTTC, &a.Notes, &a.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
