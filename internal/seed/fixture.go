package seed

import (
	"fmt"
	"os"

	"warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture describes a deterministic data set loaded from YAML. Follows and
// warbles reference users by username so fixtures stay readable.
type Fixture struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Bio      string `yaml:"bio"`
		Location string `yaml:"location"`
	} `yaml:"users"`
	Follows []struct {
		Follower string `yaml:"follower"`
		Followed string `yaml:"followed"`
	} `yaml:"follows"`
	Warbles []struct {
		Author string `yaml:"author"`
		Text   string `yaml:"text"`
	} `yaml:"warbles"`
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// Apply inserts the fixture's users, follow edges and warbles.
func (f *Fixture) Apply(db *gorm.DB) error {
	byName := make(map[string]uint, len(f.Users))

	for _, u := range f.Users {
		password := u.Password
		if password == "" {
			password = "password123"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username: u.Username,
			Email:    u.Email,
			Password: string(hash),
			Bio:      u.Bio,
			Location: u.Location,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("fixture user %q: %w", u.Username, err)
		}
		byName[u.Username] = user.ID
	}

	for _, edge := range f.Follows {
		followerID, ok := byName[edge.Follower]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %q", edge.Follower)
		}
		followedID, ok := byName[edge.Followed]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %q", edge.Followed)
		}
		follow := models.Follow{FollowerID: followerID, FollowedID: followedID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
			return fmt.Errorf("fixture follow %s->%s: %w", edge.Follower, edge.Followed, err)
		}
	}

	for _, w := range f.Warbles {
		authorID, ok := byName[w.Author]
		if !ok {
			return fmt.Errorf("fixture warble references unknown user %q", w.Author)
		}
		warble := models.Warble{Text: w.Text, UserID: authorID}
		if err := db.Create(&warble).Error; err != nil {
			return fmt.Errorf("fixture warble by %q: %w", w.Author, err)
		}
	}

	return nil
}
