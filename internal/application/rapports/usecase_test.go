package rapports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/application/rapports"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// ─── Fakes en mémoire ─────────────────────────────────────────────────────────

// fakeFactureRepo ne sert aux rapports que par ses lectures par période.
type fakeFactureRepo struct {
	factures []*entity.Facture
}

func (r *fakeFactureRepo) Create(f *entity.Facture) error { r.factures = append(r.factures, f); return nil }
func (r *fakeFactureRepo) CreateLigne(*entity.LigneFacture) error { return nil }
func (r *fakeFactureRepo) GetByID(string) (*entity.Facture, error) { return nil, nil }
func (r *fakeFactureRepo) GetLignes(string) ([]*entity.LigneFacture, error) { return nil, nil }
func (r *fakeFactureRepo) Update(*entity.Facture) error { return nil }
func (r *fakeFactureRepo) DeleteLignes(string) error { return nil }
func (r *fakeFactureRepo) List(repository.FiltresFacture, int, int) ([]*entity.Facture, error) {
	return nil, nil
}
func (r *fakeFactureRepo) Count(repository.FiltresFacture) (int, error) { return 0, nil }
func (r *fakeFactureRepo) Stats() (*repository.StatsFactures, error) {
	return &repository.StatsFactures{}, nil
}
func (r *fakeFactureRepo) DernierNumero(string) (string, error) { return "", nil }
func (r *fakeFactureRepo) HasLignesForProduit(string) (bool, error) { return false, nil }

func (r *fakeFactureRepo) ListByClientEtPeriode(clientID, typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	var out []*entity.Facture
	for _, f := range r.factures {
		if f.ClientID == clientID && f.TypeDocument == typeDocument && dansPeriode(f.Date, debut, fin) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFactureRepo) ListByPeriode(typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	var out []*entity.Facture
	for _, f := range r.factures {
		if f.TypeDocument == typeDocument && dansPeriode(f.Date, debut, fin) {
			out = append(out, f)
		}
	}
	return out, nil
}

func dansPeriode(d, debut, fin time.Time) bool {
	return !d.Before(debut) && !d.After(fin)
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) { return r.clients[id], nil }
func (r *fakeClientRepo) List(string, int, int) ([]*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) Count(string) (int, error) { return len(r.clients), nil }
func (r *fakeClientRepo) ListAll() ([]*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) Update(c *entity.Client) error { r.clients[c.ID] = c; return nil }

type fakeProduitRepo struct {
	stockables []*entity.Produit
}

func (r *fakeProduitRepo) Create(*entity.Produit) error { return nil }
func (r *fakeProduitRepo) GetByID(string) (*entity.Produit, error) { return nil, nil }
func (r *fakeProduitRepo) GetByCode(string) (*entity.Produit, error) { return nil, nil }
func (r *fakeProduitRepo) GetForUpdate(string) (*entity.Produit, error) { return nil, nil }
func (r *fakeProduitRepo) Update(*entity.Produit) error { return nil }
func (r *fakeProduitRepo) UpdateStock(string, int64) error { return nil }
func (r *fakeProduitRepo) List(string, int, int) ([]*entity.Produit, error) { return nil, nil }
func (r *fakeProduitRepo) Count(string) (int, error) { return 0, nil }
func (r *fakeProduitRepo) ListStockables() ([]*entity.Produit, error) { return r.stockables, nil }
func (r *fakeProduitRepo) Delete(string) error { return nil }

func jour(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func facture(clientID, typeDoc, date string, total int64, etat, paiement string) *entity.Facture {
	return &entity.Facture{
		ClientID:     clientID,
		TypeDocument: typeDoc,
		Date:         jour(date),
		Total:        decimal.NewFromInt(total),
		Etat:         etat,
		Paiement:     paiement,
	}
}

func newFixture() (*rapports.RapportsUseCase, *fakeFactureRepo, *fakeProduitRepo) {
	factureRepo := &fakeFactureRepo{}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"c1": {ID: "c1", TypeClient: entity.ClientPersonne, Nom: "Mukendi", Prenom: "Jean"},
		"c2": {ID: "c2", TypeClient: entity.ClientEntreprise, Nom: "Bâtir SARL"},
	}}
	produitRepo := &fakeProduitRepo{}
	return rapports.NewRapportsUseCase(factureRepo, clientRepo, produitRepo), factureRepo, produitRepo
}

// ─── RapportClient ────────────────────────────────────────────────────────────

func TestRapportClient_NetEtPaiements(t *testing.T) {
	uc, factureRepo, _ := newFixture()
	factureRepo.factures = []*entity.Facture{
		facture("c1", entity.DocumentFacture, "2026-03-01", 100, entity.EtatPayee, "espèces"),
		facture("c1", entity.DocumentFacture, "2026-03-10", 50, entity.EtatEnAttente, ""),
		facture("c1", entity.DocumentAvoir, "2026-03-15", -30, "", ""),
		// hors période et autre client : ignorés
		facture("c1", entity.DocumentFacture, "2026-04-02", 999, entity.EtatPayee, "espèces"),
		facture("c2", entity.DocumentFacture, "2026-03-05", 999, entity.EtatPayee, "espèces"),
	}

	out, err := uc.RapportClient(context.Background(), "c1", dto.PeriodeRequest{
		DateDebut: "2026-03-01", DateFin: "2026-03-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.NbFactures)
	assert.Equal(t, 1, out.NbAvoirs)
	assert.True(t, out.TotalFactures.Equal(decimal.NewFromInt(150)))
	assert.True(t, out.TotalAvoirs.Equal(decimal.NewFromInt(-30)))
	assert.True(t, out.NetAPayer.Equal(decimal.NewFromInt(120)), "net = factures + avoirs")
	assert.True(t, out.TotalPaye.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.TotalImpaye.Equal(decimal.NewFromInt(50)))

	// répartition par mode, triée par mode
	require.Len(t, out.Paiements, 2)
	assert.Equal(t, "espèces", out.Paiements[0].Mode)
	assert.Equal(t, "non précisé", out.Paiements[1].Mode)
	assert.True(t, out.Paiements[0].Total.Equal(decimal.NewFromInt(100)))
}

func TestRapportClient_Erreurs(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	_, err := uc.RapportClient(ctx, "inconnu", dto.PeriodeRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RapportClient(ctx, "c1", dto.PeriodeRequest{DateDebut: "01/03/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RapportClient(ctx, "c1", dto.PeriodeRequest{
		DateDebut: "2026-03-31", DateFin: "2026-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fin avant début refusée")
}

func TestRapportClient_FinDeJourneeIncluse(t *testing.T) {
	uc, factureRepo, _ := newFixture()
	// facture émise en cours de journée le dernier jour de la période
	f := facture("c1", entity.DocumentFacture, "2026-03-31", 80, entity.EtatPayee, "virement")
	f.Date = f.Date.Add(15 * time.Hour)
	factureRepo.factures = []*entity.Facture{f}

	out, err := uc.RapportClient(context.Background(), "c1", dto.PeriodeRequest{
		DateDebut: "2026-03-01", DateFin: "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.NbFactures)
}

// ─── RapportTousClients ───────────────────────────────────────────────────────

func TestRapportTousClients_TriParNetDecroissant(t *testing.T) {
	uc, factureRepo, _ := newFixture()
	factureRepo.factures = []*entity.Facture{
		facture("c1", entity.DocumentFacture, "2026-03-01", 100, entity.EtatPayee, ""),
		facture("c1", entity.DocumentAvoir, "2026-03-02", -40, "", ""),
		facture("c2", entity.DocumentFacture, "2026-03-03", 200, entity.EtatEnAttente, ""),
	}

	out, err := uc.RapportTousClients(context.Background(), dto.PeriodeRequest{
		DateDebut: "2026-03-01", DateFin: "2026-03-31",
	})
	require.NoError(t, err)

	require.Len(t, out.Clients, 2)
	assert.Equal(t, "c2", out.Clients[0].Client.ID, "le plus gros net vient en tête")
	assert.True(t, out.Clients[0].Net.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.Clients[1].Net.Equal(decimal.NewFromInt(60)))
	assert.True(t, out.TotalNet.Equal(decimal.NewFromInt(260)))
}

func TestRapportTousClients_ClientSupprime(t *testing.T) {
	uc, factureRepo, _ := newFixture()
	factureRepo.factures = []*entity.Facture{
		facture("fantome", entity.DocumentFacture, "2026-03-01", 75, entity.EtatPayee, ""),
	}

	out, err := uc.RapportTousClients(context.Background(), dto.PeriodeRequest{})
	require.NoError(t, err)
	require.Len(t, out.Clients, 1)
	assert.Equal(t, "fantome", out.Clients[0].Client.ID, "la ligne survit au client disparu")
}

// ─── RapportStock ─────────────────────────────────────────────────────────────

func TestRapportStock(t *testing.T) {
	uc, _, produitRepo := newFixture()
	produitRepo.stockables = []*entity.Produit{
		{ID: "p1", Nom: "Ciment", Code: "CIMENT", Stockable: true,
			StockActuel: 10, StockMinimum: 5, PVTTC: decimal.NewFromInt(12)},
		{ID: "p2", Nom: "Sable", Code: "SABLE", Stockable: true,
			StockActuel: 2, StockMinimum: 5, PVTTC: decimal.NewFromInt(8)},
	}

	out, err := uc.RapportStock(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Produits, 2)
	assert.True(t, out.Produits[0].ValeurStock.Equal(decimal.NewFromInt(120)))
	assert.False(t, out.Produits[0].SousMinimum)
	assert.True(t, out.Produits[1].SousMinimum)
	assert.Equal(t, 1, out.NbSousMinimum)
	assert.True(t, out.ValeurTotale.Equal(decimal.NewFromInt(136)))
}
