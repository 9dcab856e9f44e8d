package domain

// Member represents a gym member as returned by the backend.
// The password set at creation is write-only: no read or update
// representation ever carries it back.
type Member struct {
	ID             string      `json:"_id"`
	Name           string      `json:"name"`
	Age            int         `json:"age"`
	Email          string      `json:"email"`
	MembershipType string      `json:"membershipType"`
	ContactInfo    string      `json:"contactInfo"`
	// Trainer is a backend-performed join projection. It is present only on
	// endpoints whose contract documents it (member listing, /members/me);
	// nil means either "no trainer assigned" or "not joined here".
	Trainer *TrainerRef `json:"trainer,omitempty"`
}

// MemberRef is the shape of a member reference embedded inside other
// entities (schedule rosters). Read-only derived view, never written back.
type MemberRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MemberCreate is the payload for creating a member. This is the only
// place the member's password crosses the wire.
type MemberCreate struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	MembershipType string `json:"membershipType"`
	ContactInfo    string `json:"contactInfo"`
}

// MemberUpdate is the payload for updating a member's profile fields.
// It deliberately has no password field: updates must omit it entirely,
// not send it blank.
type MemberUpdate struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Email          string `json:"email"`
	MembershipType string `json:"membershipType"`
	ContactInfo    string `json:"contactInfo"`
}

// TrainerName returns the joined trainer's display name, or the
// placeholder shown when no trainer is assigned.
func (m Member) TrainerName() string {
	if m.Trainer == nil {
		return "Not assigned"
	}
	return m.Trainer.Name
}
