package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"skillswap/internal/app"
	"skillswap/internal/store"
)

type demoUser struct {
	name, email, bio string
	skills           []string
	lat, lng         float64
}

type demoSkill struct {
	owner int // index into the users slice
	in    store.SkillInput
}

// Loads demo fixtures so the app has something to show. Wipes existing data.
func main() {
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)
	ctx := context.Background()

	pg, err := store.NewPostgres(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()
	if err := store.RunMigrations(ctx, pg, logger); err != nil {
		log.Fatal(err)
	}
	if err := pg.ResetAll(ctx); err != nil {
		log.Fatal(err)
	}

	users := []demoUser{
		{
			name: "Alice Johnson", email: "alice@example.com",
			bio:    "Full-stack developer passionate about teaching web development",
			skills: []string{"JavaScript", "React", "Node.js"},
			lat:    37.7749, lng: -122.4194,
		},
		{
			name: "Bob Smith", email: "bob@example.com",
			bio:    "Data scientist looking to learn web technologies",
			skills: []string{"Python", "Data Science", "Machine Learning"},
			lat:    34.0522, lng: -118.2437,
		},
		{
			name: "Carol Williams", email: "carol@example.com",
			bio:    "Designer interested in frontend development",
			skills: []string{"UI/UX Design", "Figma", "Adobe XD"},
			lat:    41.8781, lng: -87.6298,
		},
	}

	logger.Info("seed.users", "count", len(users))
	ids := make([]string, 0, len(users))
	for _, du := range users {
		u, err := pg.CreateUser(ctx, du.name, du.email, "password123")
		if err != nil {
			log.Fatal(err)
		}
		_, err = pg.UpdateProfile(ctx, u.ID, store.ProfileUpdate{
			Skills: du.skills, Bio: &du.bio, Lat: &du.lat, Lng: &du.lng,
		})
		if err != nil {
			log.Fatal(err)
		}
		ids = append(ids, u.ID)
	}

	skills := []demoSkill{
		{0, store.SkillInput{
			Title:       "React Fundamentals",
			Description: "Learn the basics of React including components, props, state, and hooks",
			Tags:        []string{"react", "javascript", "frontend", "web"},
			Level:       store.LevelIntermediate,
		}},
		{0, store.SkillInput{
			Title:       "Node.js Backend Development",
			Description: "Build REST APIs with Express and MongoDB",
			Tags:        []string{"nodejs", "backend", "express", "mongodb"},
			Level:       store.LevelIntermediate,
		}},
		{1, store.SkillInput{
			Title:       "Python for Data Analysis",
			Description: "Introduction to pandas, numpy, and data visualization",
			Tags:        []string{"python", "data-science", "pandas", "analytics"},
			Level:       store.LevelBeginner,
		}},
		{1, store.SkillInput{
			Title:       "Machine Learning Basics",
			Description: "Understanding ML algorithms and scikit-learn",
			Tags:        []string{"machine-learning", "python", "ai", "data-science"},
			Level:       store.LevelAdvanced,
		}},
		{2, store.SkillInput{
			Title:       "UI/UX Design Principles",
			Description: "Learn design thinking and user-centered design",
			Tags:        []string{"design", "ui", "ux", "figma"},
			Level:       store.LevelBeginner,
		}},
		{2, store.SkillInput{
			Title:       "Responsive Web Design",
			Description: "Create beautiful, mobile-friendly interfaces",
			Tags:        []string{"css", "design", "responsive", "web"},
			Level:       store.LevelIntermediate,
		}},
	}

	logger.Info("seed.skills", "count", len(skills))
	for _, ds := range skills {
		ds.in.OwnerID = ids[ds.owner]
		ds.in.Availability = store.AvailabilityAvailable
		if _, err := pg.CreateSkill(ctx, ds.in); err != nil {
			log.Fatal(err)
		}
	}

	logger.Info("seed.done", "users", "alice@example.com bob@example.com carol@example.com", "password", "password123")
}
