// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogpost/internal/models"
	"blogpost/internal/password"
)

// DefaultPassword is the shared password assigned to every seeded user.
const DefaultPassword = "password123"

// categoryTags maps each demo category to its tag pool.
var categoryTags = map[string][]string{
	"tech":    {"python", "java", "devops", "dynamic programming"},
	"finance": {"stock market", "options", "accounting"},
}

// Seeder builds demo users, blogs and comments.
type Seeder struct {
	db     *gorm.DB
	hasher *password.Hasher
	rng    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided database handle.
func NewSeeder(db *gorm.DB, hasher *password.Hasher) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:     db,
		hasher: hasher,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes every seeded table, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.BlogTag{},
		&models.BlogCategory{},
		&models.Blog{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Seed inserts numUsers users, numBlogs blogs spread across them and roughly
// four comments per blog. Every user gets DefaultPassword.
func (s *Seeder) Seed(numUsers, numBlogs int) error {
	digest, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		users = append(users, models.User{
			ID:             uuid.NewString(),
			Username:       username,
			Email:          fmt.Sprintf("%s@example.com", username),
			PasswordDigest: digest,
			RegisteredDate: time.Now().Add(-time.Duration(s.rng.Intn(365*24)) * time.Hour),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("Inserted %d users", len(users))

	categories := make([]string, 0, len(categoryTags))
	for c := range categoryTags {
		categories = append(categories, c)
	}

	blogs := make([]models.Blog, 0, numBlogs)
	for i := 0; i < numBlogs; i++ {
		author := users[s.rng.Intn(len(users))]
		category := categories[s.rng.Intn(len(categories))]
		pool := categoryTags[category]

		blog := models.Blog{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("%s #%d", gofakeit.Sentence(4), i),
			Content:     gofakeit.Paragraph(2, 4, 8, "\n"),
			AuthorID:    author.ID,
			CreatedDate: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		blog.Tags = models.NewTagRows(blog.ID, pickTwo(s.rng, pool))
		blog.Categories = models.NewCategoryRows(blog.ID, []string{category})
		blogs = append(blogs, blog)
	}
	if err := s.db.CreateInBatches(&blogs, 50).Error; err != nil {
		return fmt.Errorf("seeding blogs: %w", err)
	}
	log.Printf("Inserted %d blogs", len(blogs))

	comments := make([]models.Comment, 0, numBlogs*4)
	for i := 0; i < numBlogs*4; i++ {
		comments = append(comments, models.Comment{
			ID:          uuid.NewString(),
			BlogID:      blogs[s.rng.Intn(len(blogs))].ID,
			AuthorID:    users[s.rng.Intn(len(users))].ID,
			Content:     gofakeit.Sentence(12),
			CreatedDate: time.Now().Add(-time.Duration(s.rng.Intn(30*24)) * time.Hour),
		})
	}
	if err := s.db.CreateInBatches(&comments, 100).Error; err != nil {
		return fmt.Errorf("seeding comments: %w", err)
	}
	log.Printf("Inserted %d comments", len(comments))

	return nil
}

// pickTwo samples two distinct values from pool.
func pickTwo(rng *rand.Rand, pool []string) []string {
	if len(pool) < 2 {
		return append([]string(nil), pool...)
	}
	i := rng.Intn(len(pool))
	j := rng.Intn(len(pool) - 1)
	if j >= i {
		j++
	}
	return []string{pool[i], pool[j]}
}
