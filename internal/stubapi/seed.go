package stubapi

import (
	"fmt"

	"gymdesk/console/internal/domain"
)

// Seed loads a small development dataset: one manager, two trainers, two
// members (one with a trainer assigned), and a schedule for today with
// one enrollment. Credentials are predictable dev-only values.
func Seed(store *Store) error {
	if _, err := store.AddManager("Grace Hall", "manager@gymdesk.local", "manager123"); err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}

	sam, err := store.CreateTrainer(domain.TrainerCreate{
		Name: "Sam Reyes", Age: 34, Email: "sam@gymdesk.local",
		Password: "trainer123", ContactInfo: "555-0101",
	})
	if err != nil {
		return fmt.Errorf("seed trainer: %w", err)
	}
	if _, err := store.CreateTrainer(domain.TrainerCreate{
		Name: "Dana Kim", Age: 29, Email: "dana@gymdesk.local",
		Password: "trainer123", ContactInfo: "555-0102",
	}); err != nil {
		return fmt.Errorf("seed trainer: %w", err)
	}

	alex, err := store.CreateMember(domain.MemberCreate{
		Name: "Alex Chen", Age: 27, Email: "alex@gymdesk.local",
		Password: "member123", MembershipType: "premium", ContactInfo: "555-0201",
	})
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}
	if _, err := store.CreateMember(domain.MemberCreate{
		Name: "Priya Nair", Age: 31, Email: "priya@gymdesk.local",
		Password: "member123", MembershipType: "basic", ContactInfo: "555-0202",
	}); err != nil {
		return fmt.Errorf("seed member: %w", err)
	}
	if err := store.AssignTrainer(alex.ID, sam.ID); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	schedule, err := store.CreateSchedule(domain.ScheduleCreate{
		Title:     "Morning Strength",
		Date:      store.Now().Format("2006-01-02"),
		Time:      "07:00 - 08:00",
		TrainerID: sam.ID,
	})
	if err != nil {
		return fmt.Errorf("seed schedule: %w", err)
	}
	if err := store.AddMemberToSchedule(schedule.ID, alex.ID); err != nil {
		return fmt.Errorf("seed enrollment: %w", err)
	}

	return nil
}
