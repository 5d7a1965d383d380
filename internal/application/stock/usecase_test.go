package stock_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	domstock "github.com/jmkadima/facturier-api/internal/domain/stock"
)

// ─── Fakes en mémoire ─────────────────────────────────────────────────────────

type fakeProduitRepo struct {
	produits map[string]*entity.Produit
}

func newFakeProduitRepo(produits ...*entity.Produit) *fakeProduitRepo {
	r := &fakeProduitRepo{produits: map[string]*entity.Produit{}}
	for _, p := range produits {
		r.produits[p.ID] = p
	}
	return r
}

func (r *fakeProduitRepo) Create(p *entity.Produit) error { r.produits[p.ID] = p; return nil }
func (r *fakeProduitRepo) GetByID(id string) (*entity.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProduitRepo) GetByCode(code string) (*entity.Produit, error) {
	for _, p := range r.produits {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeProduitRepo) GetForUpdate(id string) (*entity.Produit, error) { return r.GetByID(id) }
func (r *fakeProduitRepo) Update(p *entity.Produit) error                  { r.produits[p.ID] = p; return nil }
func (r *fakeProduitRepo) UpdateStock(id string, stockActuel int64) error {
	p, ok := r.produits[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockActuel = stockActuel
	return nil
}
func (r *fakeProduitRepo) List(string, int, int) ([]*entity.Produit, error) { return nil, nil }
func (r *fakeProduitRepo) Count(string) (int, error)                        { return len(r.produits), nil }
func (r *fakeProduitRepo) ListStockables() ([]*entity.Produit, error)       { return nil, nil }
func (r *fakeProduitRepo) Delete(id string) error                           { delete(r.produits, id); return nil }

type fakeMouvementRepo struct {
	mouvements []*entity.MouvementStock
}

func (r *fakeMouvementRepo) Create(m *entity.MouvementStock) error {
	r.mouvements = append(r.mouvements, m)
	return nil
}

func (r *fakeMouvementRepo) ListByProduit(produitID string) ([]*entity.MouvementStock, error) {
	var out []*entity.MouvementStock
	for _, m := range r.mouvements {
		if m.ProduitID == produitID {
			out = append(out, m)
		}
	}
	// plus récent en premier, comme le repository postgres
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateMouvement.After(out[j].DateMouvement)
	})
	return out, nil
}

func (r *fakeMouvementRepo) HasForProduit(produitID string) (bool, error) {
	for _, m := range r.mouvements {
		if m.ProduitID == produitID {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxRunner exécute le callback directement sur les fakes partagés.
type fakeTxRunner struct {
	produitRepo   *fakeProduitRepo
	mouvementRepo *fakeMouvementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProduitRepository,
	repository.MouvementStockRepository,
) error) error {
	return fn(r.produitRepo, r.mouvementRepo)
}

func newUseCase(produits ...*entity.Produit) (*appstock.StockUseCase, *fakeProduitRepo, *fakeMouvementRepo) {
	produitRepo := newFakeProduitRepo(produits...)
	mouvementRepo := &fakeMouvementRepo{}
	uc := appstock.NewStockUseCase(&fakeTxRunner{produitRepo, mouvementRepo}, produitRepo, mouvementRepo)
	return uc, produitRepo, mouvementRepo
}

func produitStockable(id string, stock int64) *entity.Produit {
	return &entity.Produit{ID: id, Nom: "Produit " + id, Code: "P-" + id, Stockable: true, StockActuel: stock}
}

// ─── EnregistrerMouvement ─────────────────────────────────────────────────────

func TestEnregistrerMouvement_Entree(t *testing.T) {
	uc, produitRepo, _ := newUseCase(produitStockable("p1", 100))

	view, err := uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "p1", Type: entity.MouvementEntree, Quantite: 20, Utilisateur: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), view.StockAvant)
	assert.Equal(t, int64(120), view.StockApres)

	p, _ := produitRepo.GetByID("p1")
	assert.Equal(t, int64(120), p.StockActuel)
}

// Une sortie excédentaire est absorbée : le stock est borné à zéro, jamais
// négatif, et aucun refus n'est renvoyé.
func TestEnregistrerMouvement_SortieBornee(t *testing.T) {
	uc, produitRepo, _ := newUseCase(produitStockable("p1", 5))

	view, err := uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "p1", Type: entity.MouvementSortie, Quantite: 1_000_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.StockAvant)
	assert.Equal(t, int64(0), view.StockApres)

	p, _ := produitRepo.GetByID("p1")
	assert.Equal(t, int64(0), p.StockActuel)
}

func TestEnregistrerMouvement_AjustementVersCible(t *testing.T) {
	uc, _, _ := newUseCase(produitStockable("p1", 7))

	view, err := uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "p1", Type: entity.MouvementAjustement, Quantite: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.StockApres)
	assert.Equal(t, int64(4), view.Quantite, "la magnitude enregistrée est |cible - avant|")
	assert.Equal(t, string(entity.ReferenceAjustement), view.ReferenceType)
}

func TestEnregistrerMouvement_Validation(t *testing.T) {
	uc, _, mouvementRepo := newUseCase(produitStockable("p1", 10))

	_, err := uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "p1", Type: "transfert", Quantite: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "p1", Type: entity.MouvementEntree, Quantite: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "magnitude négative refusée")

	_, err = uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "absent", Type: entity.MouvementEntree, Quantite: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, mouvementRepo.mouvements, "aucun mouvement ne doit être créé en cas d'erreur")
}

func TestEnregistrerMouvement_ProduitNonStockable(t *testing.T) {
	nonStockable := &entity.Produit{ID: "svc", Nom: "Prestation", Stockable: false}
	uc, _, _ := newUseCase(nonStockable)

	_, err := uc.EnregistrerMouvement(context.Background(), appstock.MouvementInput{
		ProduitID: "svc", Type: entity.MouvementEntree, Quantite: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── InitialiserStockDansTx ───────────────────────────────────────────────────

func TestInitialiserStock(t *testing.T) {
	uc, produitRepo, mouvementRepo := newUseCase()
	now := time.Now()

	p := produitStockable("p1", 0)
	require.NoError(t, produitRepo.Create(p))

	m, err := uc.InitialiserStockDansTx(produitRepo, mouvementRepo, p, 100, now)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, int64(0), m.StockAvant)
	assert.Equal(t, int64(100), m.StockApres)
	assert.Equal(t, entity.ReferenceInitial, m.Reference.Type)
	assert.Equal(t, "System", m.Utilisateur)

	stored, _ := produitRepo.GetByID("p1")
	assert.Equal(t, int64(100), stored.StockActuel)
}

func TestInitialiserStock_SansEffet(t *testing.T) {
	uc, produitRepo, mouvementRepo := newUseCase()
	now := time.Now()

	// quantité nulle : pas de mouvement
	p := produitStockable("p1", 0)
	m, err := uc.InitialiserStockDansTx(produitRepo, mouvementRepo, p, 0, now)
	require.NoError(t, err)
	assert.Nil(t, m)

	// produit non stockable : pas de mouvement même avec une quantité
	svc := &entity.Produit{ID: "svc", Stockable: false}
	m, err = uc.InitialiserStockDansTx(produitRepo, mouvementRepo, svc, 50, now)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, int64(0), svc.StockActuel)

	assert.Empty(t, mouvementRepo.mouvements)
}

// ─── Scénario complet + invariant de rejeu ────────────────────────────────────

func TestScenario_RejeuEgalStockActuel(t *testing.T) {
	_, produitRepo, mouvementRepo := newFixtureScenario(t)

	p, _ := produitRepo.GetByID("p1")
	assert.Equal(t, int64(50), p.StockActuel)

	historique, err := mouvementRepo.ListByProduit("p1")
	require.NoError(t, err)
	require.Len(t, historique, 4, "initial + entrée + sortie + ajustement")

	// le rejeu chronologique doit retomber sur le stock courant
	chrono := make([]*entity.MouvementStock, len(historique))
	for i, m := range historique {
		chrono[len(historique)-1-i] = m
	}
	assert.Equal(t, p.StockActuel, domstock.Rejouer(chrono))
	assert.True(t, domstock.Coherent(chrono))
}

func TestHistorique_PlusRecentEnPremier(t *testing.T) {
	uc, _, _ := newFixtureScenario(t)

	resp, err := uc.Historique(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, resp.Mouvements, 4)
	assert.Equal(t, int64(50), resp.StockActuel)
	assert.Equal(t, entity.MouvementAjustement, resp.Mouvements[0].Type, "le dernier mouvement vient en tête")
	assert.Equal(t, string(entity.ReferenceInitial), resp.Mouvements[3].ReferenceType)
}

// newFixtureScenario déroule le scénario de référence : initial 100,
// entrée 20 -> 120, sortie 150 -> 0 (bornée), ajustement 50 -> 50.
func newFixtureScenario(t *testing.T) (*appstock.StockUseCase, *fakeProduitRepo, *fakeMouvementRepo) {
	t.Helper()
	uc, produitRepo, mouvementRepo := newUseCase()

	p := produitStockable("p1", 0)
	require.NoError(t, produitRepo.Create(p))
	base := time.Now().Add(-time.Hour)
	_, err := uc.InitialiserStockDansTx(produitRepo, mouvementRepo, p, 100, base)
	require.NoError(t, err)

	ctx := context.Background()
	etapes := []appstock.MouvementInput{
		{ProduitID: "p1", Type: entity.MouvementEntree, Quantite: 20},
		{ProduitID: "p1", Type: entity.MouvementSortie, Quantite: 150},
		{ProduitID: "p1", Type: entity.MouvementAjustement, Quantite: 50},
	}
	for i, in := range etapes {
		_, err := uc.EnregistrerMouvement(ctx, in)
		require.NoError(t, err)
		// dates strictement croissantes pour un tri stable du fake
		mouvementRepo.mouvements[len(mouvementRepo.mouvements)-1].DateMouvement = base.Add(time.Duration(i+1) * time.Minute)
	}
	return uc, produitRepo, mouvementRepo
}
