// Package seed creates development and demo data. Not used in production.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional overrides run before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(8),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateWarble persists a warble for the given author with a realistic
// created-at spread over the past maxDays days.
func (f *Factory) CreateWarble(author *models.User, maxDays int, overrides ...func(*models.Warble)) (*models.Warble, error) {
	if maxDays <= 0 {
		maxDays = 30
	}

	text := gofakeit.Sentence(f.rnd.Intn(12) + 3)
	if len(text) > models.MaxWarbleLength {
		text = text[:models.MaxWarbleLength]
	}

	warble := &models.Warble{
		Text:   text,
		UserID: author.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rnd.Intn(maxDays*24)) * time.Hour).
			Add(-time.Duration(f.rnd.Intn(60)) * time.Minute),
	}

	for _, override := range overrides {
		override(warble)
	}

	if err := f.db.Create(warble).Error; err != nil {
		return nil, err
	}
	return warble, nil
}
