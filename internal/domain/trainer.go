package domain

// Trainer represents a gym trainer as returned by the backend.
type Trainer struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	ContactInfo string `json:"contactInfo"`
}

// TrainerRef is the trainer shape embedded in joined views (a member's
// assigned trainer, a schedule's trainer). Read-only derived view.
type TrainerRef struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

// TrainerCreate is the payload for creating a trainer. The password is
// set here and is immutable through this interface afterwards.
type TrainerCreate struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ContactInfo string `json:"contactInfo"`
}

// TrainerUpdate carries the mutable trainer fields. No password field.
type TrainerUpdate struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	ContactInfo string `json:"contactInfo"`
}
