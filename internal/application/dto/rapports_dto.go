package dto

import "github.com/shopspring/decimal"

// PeriodeRequest bornes d'un rapport (dates au format 2006-01-02, fin incluse).
type PeriodeRequest struct {
	DateDebut string `json:"date_debut" query:"date_debut"`
	DateFin   string `json:"date_fin" query:"date_fin"`
}

// PaiementStat répartition par mode de paiement.
type PaiementStat struct {
	Mode  string          `json:"mode"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// RapportClientResponse rapport d'un client sur une période.
type RapportClientResponse struct {
	Client        ClientResponse    `json:"client"`
	DateDebut     string            `json:"date_debut"`
	DateFin       string            `json:"date_fin"`
	Factures      []FactureResponse `json:"factures"`
	Avoirs        []FactureResponse `json:"avoirs"`
	TotalFactures decimal.Decimal   `json:"total_factures"`
	TotalAvoirs   decimal.Decimal   `json:"total_avoirs"`
	NetAPayer     decimal.Decimal   `json:"net_a_payer"`
	TotalPaye     decimal.Decimal   `json:"total_paye"`
	TotalImpaye   decimal.Decimal   `json:"total_impaye"`
	NbFactures    int               `json:"nb_factures"`
	NbAvoirs      int               `json:"nb_avoirs"`
	Paiements     []PaiementStat    `json:"paiements"`
}

// RapportClientLigne ligne du rapport tous clients.
type RapportClientLigne struct {
	Client        ClientResponse  `json:"client"`
	TotalFactures decimal.Decimal `json:"total_factures"`
	TotalAvoirs   decimal.Decimal `json:"total_avoirs"`
	Net           decimal.Decimal `json:"net"`
	NbFactures    int             `json:"nb_factures"`
	NbAvoirs      int             `json:"nb_avoirs"`
}

// RapportTousClientsResponse rapport agrégé par client sur une période,
// trié par net décroissant.
type RapportTousClientsResponse struct {
	DateDebut     string               `json:"date_debut"`
	DateFin       string               `json:"date_fin"`
	Clients       []RapportClientLigne `json:"clients"`
	TotalFactures decimal.Decimal      `json:"total_factures"`
	TotalAvoirs   decimal.Decimal      `json:"total_avoirs"`
	TotalNet      decimal.Decimal      `json:"total_net"`
}

// RapportStockResponse état du stock valorisé.
type RapportStockResponse struct {
	Produits      []StockProduitView `json:"produits"`
	ValeurTotale  decimal.Decimal    `json:"valeur_totale"`
	NbSousMinimum int                `json:"nb_sous_minimum"`
}
