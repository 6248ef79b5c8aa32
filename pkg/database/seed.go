package database

import (
	"context"
	"fmt"
	"log"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/services"
)

// Services is what seeding needs. Seeding goes through the services so the
// sample data obeys the same rules as real traffic.
type Services struct {
	Users         *services.UserService
	Conversations *services.ConversationService
	Messages      *services.MessageService
	Ratings       *services.RatingService
}

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Doctors  []string
	Patients []string
	Score    int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Doctors:  []string{"Dr. House", "Dr. Grey", "Dr. Watson"},
		Patients: []string{"Alice", "Bob"},
		Score:    5,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Doctors       []user.User
	Patients      []user.User
	Conversations []conversation.Conversation
	Messages      []message.Message
	Ratings       []rating.Rating
}

// Seed registers the configured doctors and patients, then plays one full
// consultation: the first patient writes to the first doctor, gets a reply,
// closes the conversation and rates it. A second patient, if any, is left
// with an ACTIVE conversation with the second doctor.
func Seed(ctx context.Context, svc Services, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if len(cfg.Doctors) == 0 || len(cfg.Patients) == 0 {
		return nil, fmt.Errorf("seed needs at least one doctor and one patient")
	}

	result := &SeedResult{}
	log.Println("Starting database seeding...")

	for _, name := range cfg.Doctors {
		d, err := svc.Users.Register(ctx, name, []user.Role{user.RoleDoctor})
		if err != nil {
			return nil, fmt.Errorf("failed to seed doctor %s: %w", name, err)
		}
		result.Doctors = append(result.Doctors, d)
	}
	for _, name := range cfg.Patients {
		p, err := svc.Users.Register(ctx, name, []user.Role{user.RolePatient})
		if err != nil {
			return nil, fmt.Errorf("failed to seed patient %s: %w", name, err)
		}
		result.Patients = append(result.Patients, p)
	}

	if err := seedConsultation(ctx, svc, cfg, result, result.Patients[0], result.Doctors[0], true); err != nil {
		return nil, err
	}
	if len(result.Patients) > 1 && len(result.Doctors) > 1 {
		if err := seedConsultation(ctx, svc, cfg, result, result.Patients[1], result.Doctors[1], false); err != nil {
			return nil, err
		}
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}

func seedConsultation(ctx context.Context, svc Services, cfg *SeedConfig, result *SeedResult, patient, doctor user.User, finish bool) error {
	first, err := svc.Messages.SendFirst(ctx, doctor.Name, patient.ID, "Hello doctor, I have a question about my prescription.")
	if err != nil {
		return fmt.Errorf("failed to seed first message: %w", err)
	}
	reply, err := svc.Messages.Send(ctx, first.ConversationID, doctor.ID, "Of course, what would you like to know?")
	if err != nil {
		return fmt.Errorf("failed to seed reply: %w", err)
	}
	result.Messages = append(result.Messages, first, reply)

	if !finish {
		conv, _, err := svc.Conversations.FindActiveBetween(ctx, patient.ID, doctor.ID)
		if err != nil {
			return fmt.Errorf("failed to load seeded conversation: %w", err)
		}
		result.Conversations = append(result.Conversations, conv)
		return nil
	}

	closed, err := svc.Conversations.Close(ctx, first.ConversationID, patient.ID)
	if err != nil {
		return fmt.Errorf("failed to close seeded conversation: %w", err)
	}
	result.Conversations = append(result.Conversations, closed)

	rt, err := svc.Ratings.Create(ctx, closed.ID, patient.ID, doctor.ID, cfg.Score)
	if err != nil {
		return fmt.Errorf("failed to seed rating: %w", err)
	}
	result.Ratings = append(result.Ratings, rt)
	return nil
}

// TruncateAll deletes every row through the repositories, children first,
// in one unit of work.
func TruncateAll(ctx context.Context, uow repository.UnitOfWork) error {
	return uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		steps := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"ratings", repos.Ratings.DeleteAll},
			{"messages", repos.Messages.DeleteAll},
			{"conversations", repos.Conversations.DeleteAll},
			{"users", repos.Users.DeleteAll},
		}
		for _, step := range steps {
			if err := step.fn(ctx); err != nil {
				return fmt.Errorf("failed to clear %s: %w", step.name, err)
			}
		}
		return nil
	})
}

// ClearAndReseed clears all data and runs seed again (USE WITH CAUTION)
func ClearAndReseed(ctx context.Context, uow repository.UnitOfWork, svc Services, cfg *SeedConfig) (*SeedResult, error) {
	log.Println("Clearing all data...")
	if err := TruncateAll(ctx, uow); err != nil {
		return nil, err
	}

	log.Println("Running seed...")
	return Seed(ctx, svc, cfg)
}
