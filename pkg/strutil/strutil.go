package strutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer décompose les caractères accentués et retire les marques
// combinantes (é -> e, ç -> c).
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SansAccents renvoie s sans signes diacritiques.
func SansAccents(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// CodeDepuisNom dérive un code produit à partir d'un nom : accents retirés,
// majuscules, caractères non alphanumériques remplacés par '-'.
// "Café moulu 500g" -> "CAFE-MOULU-500G".
func CodeDepuisNom(nom string) string {
	s := strings.ToUpper(SansAccents(strings.TrimSpace(nom)))
	var b strings.Builder
	lastDash := true // évite un tiret en tête
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NormaliserRecherche prépare un terme pour une recherche insensible aux
// accents et à la casse.
func NormaliserRecherche(s string) string {
	return strings.ToLower(SansAccents(strings.TrimSpace(s)))
}
