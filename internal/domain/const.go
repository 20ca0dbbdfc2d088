package domain

// Context keys populated by the auth middleware.
const (
	RequesterIdCtxKey    = "hl-requesterId"
	RequesterEmailCtxKey = "hl-requesterEmail"
)

// Redis channel carrying adoption events for the realtime feed.
const AdoptionEventChannel = "helpline:adoptions"

// Event is the payload published when a sponsorship is created or removed.
type Event struct {
	Type   string `json:"type"` // "adopted" | "unadopted"
	Domain string `json:"domain"`
	CaseID string `json:"caseId"`
	UserID string `json:"userId"`
}
