// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the known plaintext every seeded account logs in with.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
	// bcrypt of SeedPassword, computed once; hashing per user is slow
	hashedPassword string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	return &Factory{
		db:             db,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		hashedPassword: string(hashed),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:    gofakeit.Email(),
		Password: f.hashedPassword,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		Published: f.rng.Intn(10) > 1, // mostly published
		UserID:    user.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateVote records a vote by the user on the post. Duplicate pairs are
// skipped silently so random vote meshes do not abort the run.
func (f *Factory) CreateVote(user *models.User, post *models.Post) (*models.Vote, error) {
	vote := &models.Vote{
		UserID: user.ID,
		PostID: post.ID,
	}

	err := f.db.Where(models.Vote{UserID: user.ID, PostID: post.ID}).
		FirstOrCreate(vote).Error
	if err != nil {
		return nil, err
	}
	return vote, nil
}
