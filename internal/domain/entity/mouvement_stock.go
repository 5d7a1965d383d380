package entity

import "time"

// Types de mouvement de stock.
const (
	MouvementEntree     = "entree"
	MouvementSortie     = "sortie"
	MouvementAjustement = "ajustement"
)

// TypeReference origine d'un mouvement de stock.
type TypeReference string

// Origines possibles d'un mouvement.
const (
	ReferenceInitial           TypeReference = "initial"
	ReferenceFacture           TypeReference = "facture"
	ReferenceApprovisionnement TypeReference = "approvisionnement"
	ReferenceAjustement        TypeReference = "ajustement"
)

// ReferenceMouvement référence polymorphe vers l'origine d'un mouvement.
// Construire via les constructeurs ci-dessous : seuls facture et
// approvisionnement portent un ID, les combinaisons invalides ne sont pas
// représentables par l'API du type.
type ReferenceMouvement struct {
	Type TypeReference
	ID   string // vide pour initial et ajustement
}

// NewReferenceInitiale référence du mouvement de stock initial d'un produit.
func NewReferenceInitiale() ReferenceMouvement {
	return ReferenceMouvement{Type: ReferenceInitial}
}

// NewReferenceFacture référence vers la facture à l'origine du mouvement.
func NewReferenceFacture(factureID string) ReferenceMouvement {
	return ReferenceMouvement{Type: ReferenceFacture, ID: factureID}
}

// NewReferenceApprovisionnement référence vers l'approvisionnement reçu.
func NewReferenceApprovisionnement(approID string) ReferenceMouvement {
	return ReferenceMouvement{Type: ReferenceApprovisionnement, ID: approID}
}

// NewReferenceAjustement référence d'un ajustement manuel.
func NewReferenceAjustement() ReferenceMouvement {
	return ReferenceMouvement{Type: ReferenceAjustement}
}

// MouvementStock enregistrement immuable du grand livre de stock.
// Jamais modifié ni supprimé après création. Quantite est une magnitude
// positive ; pour un ajustement elle vaut |cible - stock avant| tandis que
// StockApres porte la cible exacte.
type MouvementStock struct {
	ID            string
	ProduitID     string
	TypeMouvement string // entree, sortie, ajustement
	Quantite      int64
	StockAvant    int64
	StockApres    int64
	Reference     ReferenceMouvement
	Commentaire   string
	Utilisateur   string
	DateMouvement time.Time
}
