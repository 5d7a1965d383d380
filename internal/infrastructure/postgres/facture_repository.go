package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	"github.com/jmkadima/facturier-api/pkg/strutil"
)

var _ repository.FactureRepository = (*FactureRepo)(nil)

const colonnesFacture = `f.id, f.numero, f.type_document, f.client_id, f.facture_originale_id,
	f.date, f.total, f.paiement, f.etat, f.notes, f.date_creation`

// FactureRepo implémentation de FactureRepository (utilisable avec pool ou tx).
type FactureRepo struct {
	q Querier
}

// NewFactureRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewFactureRepository(q Querier) *FactureRepo {
	return &FactureRepo{q: q}
}

// Create persiste l'en-tête d'une facture. Numéro déjà pris = ErrDuplicate.
func (r *FactureRepo) Create(f *entity.Facture) error {
	query := `
		INSERT INTO factures (id, numero, type_document, client_id, facture_originale_id,
			date, total, paiement, etat, notes, date_creation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var originale *string
	if f.FactureOriginaleID != "" {
		originale = &f.FactureOriginaleID
	}
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Numero, f.TypeDocument, f.ClientID, originale,
		f.Date, f.Total, f.Paiement, f.Etat, f.Notes, f.DateCreation,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert facture: %w", err)
	}
	return nil
}

// CreateLigne persiste une ligne de facture.
func (r *FactureRepo) CreateLigne(l *entity.LigneFacture) error {
	query := `
		INSERT INTO lignes_facture (id, facture_id, produit_id, quantite, prix_unitaire, tva)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.FactureID, l.ProduitID, l.Quantite, l.PrixUnitaire, l.TVA,
	)
	if err != nil {
		return fmt.Errorf("insert ligne facture: %w", err)
	}
	return nil
}

// GetByID obtient une facture par ID.
func (r *FactureRepo) GetByID(id string) (*entity.Facture, error) {
	query := `SELECT ` + colonnesFacture + ` FROM factures f WHERE f.id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get facture")
}

// GetLignes renvoie les lignes d'une facture.
func (r *FactureRepo) GetLignes(factureID string) ([]*entity.LigneFacture, error) {
	query := `
		SELECT id, facture_id, produit_id, quantite, prix_unitaire, tva
		FROM lignes_facture WHERE facture_id = $1`
	rows, err := r.q.Query(context.Background(), query, factureID)
	if err != nil {
		return nil, fmt.Errorf("get lignes facture: %w", err)
	}
	defer rows.Close()
	var list []*entity.LigneFacture
	for rows.Next() {
		var l entity.LigneFacture
		if err := rows.Scan(&l.ID, &l.FactureID, &l.ProduitID, &l.Quantite, &l.PrixUnitaire, &l.TVA); err != nil {
			return nil, fmt.Errorf("scan ligne facture: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update met à jour l'en-tête d'une facture.
func (r *FactureRepo) Update(f *entity.Facture) error {
	query := `
		UPDATE factures SET total = $2, paiement = $3, etat = $4, notes = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.Total, f.Paiement, f.Etat, f.Notes)
	if err != nil {
		return fmt.Errorf("update facture: %w", err)
	}
	return nil
}

// DeleteLignes supprime toutes les lignes d'une facture (remplacement à l'édition).
func (r *FactureRepo) DeleteLignes(factureID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM lignes_facture WHERE facture_id = $1`, factureID)
	if err != nil {
		return fmt.Errorf("delete lignes facture: %w", err)
	}
	return nil
}

// List liste les factures filtrées avec pagination, plus récente en premier.
func (r *FactureRepo) List(filtres repository.FiltresFacture, limit, offset int) ([]*entity.Facture, error) {
	where, args := construireFiltres(filtres)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM factures f LEFT JOIN clients c ON c.id = f.client_id
		%s
		ORDER BY f.date DESC
		LIMIT $%d OFFSET $%d`, colonnesFacture, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list factures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Facture
	for rows.Next() {
		f, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Count compte les factures correspondant aux filtres.
func (r *FactureRepo) Count(filtres repository.FiltresFacture) (int, error) {
	where, args := construireFiltres(filtres)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM factures f LEFT JOIN clients c ON c.id = f.client_id
		%s`, where)
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count factures: %w", err)
	}
	return n, nil
}

// Stats agrégats globaux : total facturé, total avoirs (négatif), impayé et
// compteurs. Calculés en une requête.
func (r *FactureRepo) Stats() (*repository.StatsFactures, error) {
	query := `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE type_document = 'facture'), 0),
			COALESCE(SUM(total) FILTER (WHERE type_document = 'avoir'), 0),
			COALESCE(SUM(total) FILTER (WHERE type_document = 'facture' AND etat <> 'Payée'), 0),
			COUNT(*) FILTER (WHERE type_document = 'facture'),
			COUNT(*) FILTER (WHERE type_document = 'avoir'),
			COUNT(*) FILTER (WHERE type_document = 'facture' AND etat <> 'Payée')
		FROM factures`
	var s repository.StatsFactures
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalFacture, &s.TotalAvoir, &s.TotalImpaye,
		&s.NbFactures, &s.NbAvoirs, &s.NbImpayes,
	)
	if err != nil {
		return nil, fmt.Errorf("stats factures: %w", err)
	}
	return &s, nil
}

// DernierNumero renvoie le plus grand numéro existant pour un préfixe, vide si
// aucun. L'ordre par longueur puis valeur reste correct au-delà de 9999.
func (r *FactureRepo) DernierNumero(prefixe string) (string, error) {
	query := `
		SELECT numero FROM factures
		WHERE numero LIKE $1 || '%'
		ORDER BY length(numero) DESC, numero DESC
		LIMIT 1`
	var numero string
	err := r.q.QueryRow(context.Background(), query, prefixe).Scan(&numero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("dernier numero facture: %w", err)
	}
	return numero, nil
}

// ListByClientEtPeriode liste les documents d'un client sur une période.
func (r *FactureRepo) ListByClientEtPeriode(clientID, typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	query := `
		SELECT ` + colonnesFacture + `
		FROM factures f
		WHERE f.client_id = $1 AND f.type_document = $2 AND f.date BETWEEN $3 AND $4
		ORDER BY f.date`
	rows, err := r.q.Query(context.Background(), query, clientID, typeDocument, debut, fin)
	if err != nil {
		return nil, fmt.Errorf("list factures client: %w", err)
	}
	defer rows.Close()
	var list []*entity.Facture
	for rows.Next() {
		f, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// ListByPeriode liste tous les documents d'un type sur une période.
func (r *FactureRepo) ListByPeriode(typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	query := `
		SELECT ` + colonnesFacture + `
		FROM factures f
		WHERE f.type_document = $1 AND f.date BETWEEN $2 AND $3
		ORDER BY f.date`
	rows, err := r.q.Query(context.Background(), query, typeDocument, debut, fin)
	if err != nil {
		return nil, fmt.Errorf("list factures periode: %w", err)
	}
	defer rows.Close()
	var list []*entity.Facture
	for rows.Next() {
		f, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// HasLignesForProduit indique si des lignes de facture référencent le produit.
func (r *FactureRepo) HasLignesForProduit(produitID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM lignes_facture WHERE produit_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, produitID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has lignes produit: %w", err)
	}
	return exists, nil
}

// construireFiltres assemble la clause WHERE et ses arguments.
func construireFiltres(filtres repository.FiltresFacture) (string, []any) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filtres.Recherche != "" {
		p := arg(strutil.NormaliserRecherche(filtres.Recherche))
		conditions = append(conditions, fmt.Sprintf(
			"(lower(f.numero) LIKE '%%' || %s || '%%' OR unaccent(lower(c.nom)) LIKE '%%' || %s || '%%' OR unaccent(lower(c.prenom)) LIKE '%%' || %s || '%%')",
			p, p, p))
	}
	if filtres.TypeDocument != "" {
		conditions = append(conditions, "f.type_document = "+arg(filtres.TypeDocument))
	}
	if filtres.Etat != "" {
		conditions = append(conditions, "f.etat = "+arg(filtres.Etat))
	}
	if filtres.Paiement != "" {
		conditions = append(conditions, "f.paiement = "+arg(filtres.Paiement))
	}
	if filtres.DateDebut != nil {
		conditions = append(conditions, "f.date >= "+arg(*filtres.DateDebut))
	}
	if filtres.DateFin != nil {
		conditions = append(conditions, "f.date <= "+arg(*filtres.DateFin))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *FactureRepo) scanOne(row pgx.Row, op string) (*entity.Facture, error) {
	f, err := scanFacture(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func (r *FactureRepo) scanRow(rows pgx.Rows) (*entity.Facture, error) {
	f, err := scanFacture(rows)
	if err != nil {
		return nil, fmt.Errorf("scan facture: %w", err)
	}
	return f, nil
}

func scanFacture(row pgx.Row) (*entity.Facture, error) {
	var f entity.Facture
	var originale *string
	err := row.Scan(
		&f.ID, &f.Numero, &f.TypeDocument, &f.ClientID, &originale,
		&f.Date, &f.Total, &f.Paiement, &f.Etat, &f.Notes, &f.DateCreation,
	)
	if err != nil {
		return nil, err
	}
	if originale != nil {
		f.FactureOriginaleID = *originale
	}
	return &f, nil
}
