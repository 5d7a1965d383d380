package rapports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

const formatDate = "2006-01-02"

// RapportsUseCase rapports de facturation et état du stock. Les rapports sont
// des lectures pures : aucun agrégat n'est stocké, tout est recalculé depuis
// les factures et les produits.
type RapportsUseCase struct {
	factureRepo repository.FactureRepository
	clientRepo  repository.ClientRepository
	produitRepo repository.ProduitRepository
}

// NewRapportsUseCase construit le cas d'usage.
func NewRapportsUseCase(
	factureRepo repository.FactureRepository,
	clientRepo repository.ClientRepository,
	produitRepo repository.ProduitRepository,
) *RapportsUseCase {
	return &RapportsUseCase{
		factureRepo: factureRepo,
		clientRepo:  clientRepo,
		produitRepo: produitRepo,
	}
}

// RapportClient rapport d'un client sur une période : factures, avoirs, net à
// payer, payé/impayé et répartition par mode de paiement.
func (uc *RapportsUseCase) RapportClient(ctx context.Context, clientID string, periode dto.PeriodeRequest) (*dto.RapportClientResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	debut, fin, err := bornesPeriode(periode)
	if err != nil {
		return nil, err
	}

	factures, err := uc.factureRepo.ListByClientEtPeriode(clientID, entity.DocumentFacture, debut, fin)
	if err != nil {
		return nil, err
	}
	avoirs, err := uc.factureRepo.ListByClientEtPeriode(clientID, entity.DocumentAvoir, debut, fin)
	if err != nil {
		return nil, err
	}

	resp := &dto.RapportClientResponse{
		Client:    *billing.ToClientResponse(client),
		DateDebut: debut.Format(formatDate),
		DateFin:   fin.Format(formatDate),
	}

	parPaiement := make(map[string]*dto.PaiementStat)
	for _, f := range factures {
		resp.Factures = append(resp.Factures, *vueFacture(f))
		resp.TotalFactures = resp.TotalFactures.Add(f.Total)
		resp.NbFactures++
		if f.Etat == entity.EtatPayee {
			resp.TotalPaye = resp.TotalPaye.Add(f.Total)
		} else {
			resp.TotalImpaye = resp.TotalImpaye.Add(f.Total)
		}
		mode := f.Paiement
		if mode == "" {
			mode = "non précisé"
		}
		stat, ok := parPaiement[mode]
		if !ok {
			stat = &dto.PaiementStat{Mode: mode}
			parPaiement[mode] = stat
		}
		stat.Count++
		stat.Total = stat.Total.Add(f.Total)
	}
	for _, a := range avoirs {
		resp.Avoirs = append(resp.Avoirs, *vueFacture(a))
		resp.TotalAvoirs = resp.TotalAvoirs.Add(a.Total)
		resp.NbAvoirs++
	}
	resp.NetAPayer = resp.TotalFactures.Add(resp.TotalAvoirs)

	for _, stat := range parPaiement {
		resp.Paiements = append(resp.Paiements, *stat)
	}
	sort.Slice(resp.Paiements, func(i, j int) bool {
		return resp.Paiements[i].Mode < resp.Paiements[j].Mode
	})
	return resp, nil
}

// RapportTousClients agrège factures et avoirs par client sur une période,
// trié par net décroissant. Les clients sans activité n'apparaissent pas.
func (uc *RapportsUseCase) RapportTousClients(ctx context.Context, periode dto.PeriodeRequest) (*dto.RapportTousClientsResponse, error) {
	debut, fin, err := bornesPeriode(periode)
	if err != nil {
		return nil, err
	}
	factures, err := uc.factureRepo.ListByPeriode(entity.DocumentFacture, debut, fin)
	if err != nil {
		return nil, err
	}
	avoirs, err := uc.factureRepo.ListByPeriode(entity.DocumentAvoir, debut, fin)
	if err != nil {
		return nil, err
	}

	parClient := make(map[string]*dto.RapportClientLigne)
	ligne := func(clientID string) (*dto.RapportClientLigne, error) {
		if l, ok := parClient[clientID]; ok {
			return l, nil
		}
		client, err := uc.clientRepo.GetByID(clientID)
		if err != nil {
			return nil, err
		}
		l := &dto.RapportClientLigne{}
		if client != nil {
			l.Client = *billing.ToClientResponse(client)
		} else {
			l.Client = dto.ClientResponse{ID: clientID}
		}
		parClient[clientID] = l
		return l, nil
	}

	resp := &dto.RapportTousClientsResponse{
		DateDebut: debut.Format(formatDate),
		DateFin:   fin.Format(formatDate),
	}
	for _, f := range factures {
		l, err := ligne(f.ClientID)
		if err != nil {
			return nil, err
		}
		l.TotalFactures = l.TotalFactures.Add(f.Total)
		l.NbFactures++
		resp.TotalFactures = resp.TotalFactures.Add(f.Total)
	}
	for _, a := range avoirs {
		l, err := ligne(a.ClientID)
		if err != nil {
			return nil, err
		}
		l.TotalAvoirs = l.TotalAvoirs.Add(a.Total)
		l.NbAvoirs++
		resp.TotalAvoirs = resp.TotalAvoirs.Add(a.Total)
	}
	for _, l := range parClient {
		l.Net = l.TotalFactures.Add(l.TotalAvoirs)
		resp.Clients = append(resp.Clients, *l)
	}
	resp.TotalNet = resp.TotalFactures.Add(resp.TotalAvoirs)
	sort.Slice(resp.Clients, func(i, j int) bool {
		return resp.Clients[i].Net.GreaterThan(resp.Clients[j].Net)
	})
	return resp, nil
}

// RapportStock état du stock des produits stockables : valeur par produit
// (stock × prix de vente TTC), valeur totale et nombre de produits sous
// leur minimum.
func (uc *RapportsUseCase) RapportStock(ctx context.Context) (*dto.RapportStockResponse, error) {
	produits, err := uc.produitRepo.ListStockables()
	if err != nil {
		return nil, err
	}
	resp := &dto.RapportStockResponse{
		Produits:     make([]dto.StockProduitView, 0, len(produits)),
		ValeurTotale: decimal.Zero,
	}
	for _, p := range produits {
		sous := p.SousStockMinimum()
		if sous {
			resp.NbSousMinimum++
		}
		valeur := p.ValeurStock()
		resp.ValeurTotale = resp.ValeurTotale.Add(valeur)
		resp.Produits = append(resp.Produits, dto.StockProduitView{
			ProduitID:    p.ID,
			Nom:          p.Nom,
			Code:         p.Code,
			StockActuel:  p.StockActuel,
			StockMinimum: p.StockMinimum,
			ValeurStock:  valeur,
			SousMinimum:  sous,
		})
	}
	return resp, nil
}

// bornesPeriode parse les dates de la période. Sans borne de début le rapport
// démarre à l'époque ; sans borne de fin il court jusqu'à maintenant. La date
// de fin est incluse (fin de journée).
func bornesPeriode(periode dto.PeriodeRequest) (time.Time, time.Time, error) {
	debut := time.Time{}
	fin := time.Now()
	if periode.DateDebut != "" {
		d, err := time.Parse(formatDate, periode.DateDebut)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		debut = d
	}
	if periode.DateFin != "" {
		f, err := time.Parse(formatDate, periode.DateFin)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		fin = f.Add(24*time.Hour - time.Nanosecond)
	}
	if !debut.IsZero() && fin.Before(debut) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return debut, fin, nil
}

func vueFacture(f *entity.Facture) *dto.FactureResponse {
	return &dto.FactureResponse{
		ID:                 f.ID,
		Numero:             f.Numero,
		TypeDocument:       f.TypeDocument,
		ClientID:           f.ClientID,
		FactureOriginaleID: f.FactureOriginaleID,
		Date:               f.Date,
		Total:              f.Total,
		Paiement:           f.Paiement,
		Etat:               f.Etat,
	}
}
