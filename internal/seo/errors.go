package seo

import "strings"

// FailureKind classifies a rank-check failure for user-facing display.
type FailureKind string

const (
	FailureConnectivity FailureKind = "connectivity"
	FailureProxy        FailureKind = "proxy"
	FailureTimeout      FailureKind = "timeout"
	FailureQuota        FailureKind = "quota"
)

// ClassifyFailure maps an underlying error onto a failure kind by matching
// substrings of its message. Timeout is checked before connectivity since a
// deadline error often also mentions the dial.
func ClassifyFailure(err error) FailureKind {
	if err == nil {
		return FailureConnectivity
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return FailureTimeout
	case strings.Contains(msg, "quota") || strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		return FailureQuota
	case strings.Contains(msg, "proxy") || strings.Contains(msg, "cors"):
		return FailureProxy
	default:
		return FailureConnectivity
	}
}

// HumanMessage is the storefront-admin wording for each failure kind.
func (k FailureKind) HumanMessage() string {
	switch k {
	case FailureTimeout:
		return "La requête a expiré. Le service de recherche met trop de temps à répondre."
	case FailureQuota:
		return "Le quota de l'API de recherche est épuisé. Réessayez plus tard."
	case FailureProxy:
		return "La requête a été bloquée par un proxy. Vérifiez la configuration réseau."
	default:
		return "Impossible de joindre le service de recherche. Vérifiez la connexion."
	}
}
