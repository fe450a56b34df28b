package service

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"forum/backend/internal/hub"
)

// Notifier delivers real-time events to a user. *hub.Hub satisfies it.
type Notifier interface {
	Notify(userID uint, event hub.Event)
}

type noopNotifier struct{}

func (noopNotifier) Notify(uint, hub.Event) {}

// Services bundles the domain services sharing one database handle.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Posts      *PostService
	Categories *CategoryService
	Comments   *CommentService
	Likes      *LikeService
	Friends    *FriendsService
}

// New wires every service. notifier may be nil.
func New(db *gorm.DB, notifier Notifier) *Services {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Services{
		Auth:       NewAuthService(db),
		Users:      NewUserService(db),
		Posts:      NewPostService(db),
		Categories: NewCategoryService(db),
		Comments:   NewCommentService(db, notifier),
		Likes:      NewLikeService(db, notifier),
		Friends:    NewFriendsService(db, notifier),
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (Page-1)*Limit within a 32-bit SQL offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// ListOptions selects a page of a collection. Query is a case-insensitive
// substring filter whose target depends on the collection.
type ListOptions struct {
	Page  int
	Limit int
	Query string
}

// Normalize clamps the page and limit into range.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Page > MaxPage {
		o.Page = MaxPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultPageSize
	}
	if o.Limit > MaxPageSize {
		o.Limit = MaxPageSize
	}
	o.Query = strings.TrimSpace(o.Query)
	return o
}

func (o ListOptions) offset() int {
	return (o.Page - 1) * o.Limit
}

func paginate(o ListOptions) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(o.offset()).Limit(o.Limit)
	}
}

// likeEscape makes backslash the LIKE escape character on every dialect.
const likeEscape = ` ESCAPE '\'`

// containsFold builds a LIKE pattern for a case-insensitive substring match.
func containsFold(q string) string {
	q = strings.ToLower(q)
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate reports a unique-constraint violation from any supported driver.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
