// Package stock porte la logique pure du grand livre de stock : le pli d'une
// suite ordonnée de mouvements (entrée, sortie, ajustement) vers le stock
// courant d'un produit. Aucune dépendance, aucun effet de bord.
package stock

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// Resultat d'application d'un mouvement sur un stock.
type Resultat struct {
	StockAvant int64
	StockApres int64
	// Quantite est la magnitude enregistrée sur le mouvement : la quantité
	// demandée pour entrée/sortie, |cible - avant| pour un ajustement.
	Quantite int64
}

// Appliquer calcule l'effet d'un mouvement sur stockAvant.
//   - entrée : après = avant + quantité
//   - sortie : après = max(0, avant - quantité) ; le stock est borné à zéro,
//     une sortie excédentaire est absorbée, jamais refusée
//   - ajustement : quantité est la cible absolue ; après = cible,
//     la magnitude enregistrée vaut |cible - avant|
//
// quantite doit être une magnitude non négative (la cible pour un ajustement).
func Appliquer(typeMouvement string, stockAvant, quantite int64) (Resultat, bool) {
	switch typeMouvement {
	case entity.MouvementEntree:
		return Resultat{StockAvant: stockAvant, StockApres: stockAvant + quantite, Quantite: quantite}, true
	case entity.MouvementSortie:
		apres := stockAvant - quantite
		if apres < 0 {
			apres = 0
		}
		return Resultat{StockAvant: stockAvant, StockApres: apres, Quantite: quantite}, true
	case entity.MouvementAjustement:
		delta := quantite - stockAvant
		if delta < 0 {
			delta = -delta
		}
		return Resultat{StockAvant: stockAvant, StockApres: quantite, Quantite: delta}, true
	}
	return Resultat{}, false
}

// Rejouer replie un historique de mouvements en ordre chronologique et renvoie
// le stock final. Sert à vérifier l'invariant : le StockActuel d'un produit
// doit toujours être égal au rejeu de son historique.
func Rejouer(mouvements []*entity.MouvementStock) int64 {
	var stock int64
	for _, m := range mouvements {
		if m.TypeMouvement == entity.MouvementAjustement {
			// StockApres porte la cible exacte, la magnitude ne suffit pas
			stock = m.StockApres
			continue
		}
		res, ok := Appliquer(m.TypeMouvement, stock, m.Quantite)
		if ok {
			stock = res.StockApres
		}
	}
	return stock
}

// Coherent vérifie qu'un historique chronologique est auto-cohérent : chaque
// mouvement part du stock laissé par le précédent.
func Coherent(mouvements []*entity.MouvementStock) bool {
	var stock int64
	for _, m := range mouvements {
		if m.StockAvant != stock {
			return false
		}
		stock = m.StockApres
	}
	return true
}
