package domain

// Schedule represents a training session slot. The trainer is set at
// creation and is not reassignable through this interface; members are
// enrolled incrementally after creation.
type Schedule struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	// Date is an ISO calendar date (YYYY-MM-DD) as the backend stores it.
	Date string `json:"date"`
	// Time is a free-form range, e.g. "07:00 - 08:00".
	Time string `json:"time"`
	// Trainer and Members are backend-performed join projections.
	Trainer *TrainerRef `json:"trainer,omitempty"`
	Members []MemberRef `json:"members"`
}

// ScheduleCreate is the payload for creating a schedule. A trainer is
// mandatory at creation.
type ScheduleCreate struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	TrainerID string `json:"trainerId"`
}

// HasMember reports whether the roster already contains the member.
func (s Schedule) HasMember(memberID string) bool {
	for _, m := range s.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// TrainerName returns the joined trainer's display name, empty if the
// endpoint did not join it.
func (s Schedule) TrainerName() string {
	if s.Trainer == nil {
		return ""
	}
	return s.Trainer.Name
}
