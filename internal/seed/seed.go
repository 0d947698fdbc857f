package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with demo users, posts and votes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Votes go first because they reference
// both other tables.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	for _, table := range []string{"votes", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the given number of users and posts, then sprinkles votes so
// listings show non-zero counts. Every account's password is SeedPassword.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(owner)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	// Roughly a third of user/post pairs get a vote.
	votes := 0
	for _, post := range posts {
		for _, user := range users {
			if s.factory.rng.Intn(3) != 0 {
				continue
			}
			if _, err := s.factory.CreateVote(user, post); err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
			votes++
		}
	}
	log.Printf("Created %d votes", votes)

	return nil
}
