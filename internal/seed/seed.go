package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"forum/backend/internal/models"
	"forum/backend/internal/service"
)

//go:embed seed.yaml
var defaultSeed []byte

// User is one account in a seed file.
type User struct {
	Username string      `yaml:"username"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
}

// File is the content of a seed file.
type File struct {
	Users []User `yaml:"users"`
}

// Parse decodes and validates a seed file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}

	var errs error
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" || u.Password == "" {
			errs = errors.Join(errs, fmt.Errorf("user %d: username, email and password are required", i))
		}
		if u.Role == "" {
			f.Users[i].Role = models.RoleMember
		} else if !u.Role.Valid() {
			errs = errors.Join(errs, fmt.Errorf("user %d: unknown role %q", i, u.Role))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &f, nil
}

// Load reads the seed file at path, or the embedded default when path is empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Run creates the users of f that do not exist yet and returns how many it created.
// Existing usernames are left untouched, so running it twice is harmless.
func Run(ctx context.Context, db *gorm.DB, f *File, lgr zerolog.Logger) (int, error) {
	var (
		created  int
		finalErr error
	)

	for _, u := range f.Users {
		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			lgr.Error().Err(err).Str("username", u.Username).Msg("Error checking if seed user exists")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if count > 0 {
			lgr.Debug().Str("username", u.Username).Msg("Seed user already exists, skipping")
			continue
		}

		hash, err := service.HashPassword(u.Password, bcrypt.DefaultCost)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := models.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: hash,
			Role:         u.Role,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			lgr.Error().Err(err).Str("username", u.Username).Msg("Error creating seed user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Str("username", u.Username).Str("role", string(u.Role)).Uint("id", user.ID).Msg("Seed user created")
		created++
	}

	return created, finalErr
}
