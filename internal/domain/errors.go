package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound     = errors.New("ressource introuvable")
	ErrDuplicate    = errors.New("ressource dupliquée")
	ErrInvalidInput = errors.New("entrée invalide")
	ErrConflict     = errors.New("conflit avec l'état actuel")
	ErrUnauthorized = errors.New("non autorisé")
	ErrForbidden    = errors.New("accès refusé")
)
