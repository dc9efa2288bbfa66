package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers   int
	NumWarbles int
	MaxDays    int
}

// Seeder populates the database with generated users, warbles, follows and
// likes for local development.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rnd     *rand.Rand
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Edge tables go first so foreign keys
// never dangle mid-way.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.Follow{}, &models.Warble{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run generates opts.NumUsers users with a social mesh of follows, then
// opts.NumWarbles warbles with likes sprinkled across them.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumWarbles <= 0 {
		opts.NumWarbles = 100
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("seeded %d users", len(users))

	if err := s.seedFollows(users); err != nil {
		return err
	}

	warbles, err := s.seedWarbles(users, opts.NumWarbles, opts.MaxDays)
	if err != nil {
		return err
	}
	log.Printf("seeded %d warbles", len(warbles))

	return s.seedLikes(users, warbles)
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// seedFollows gives every user a handful of random follows, never themselves.
func (s *Seeder) seedFollows(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		n := s.rnd.Intn(len(users)/2 + 1)
		for i := 0; i < n; i++ {
			followed := users[s.rnd.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}
			edge := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedWarbles(users []*models.User, n, maxDays int) ([]*models.Warble, error) {
	warbles := make([]*models.Warble, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rnd.Intn(len(users))]
		warble, err := s.factory.CreateWarble(author, maxDays)
		if err != nil {
			return nil, fmt.Errorf("create warble: %w", err)
		}
		warbles = append(warbles, warble)
	}
	return warbles, nil
}

// seedLikes likes roughly a third of the warbles per user, skipping each
// user's own warbles.
func (s *Seeder) seedLikes(users []*models.User, warbles []*models.Warble) error {
	for _, user := range users {
		for _, warble := range warbles {
			if warble.UserID == user.ID || s.rnd.Intn(3) != 0 {
				continue
			}
			like := models.Like{UserID: user.ID, WarbleID: warble.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
		}
	}
	return nil
}
