package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"jobportal-api/internal/apperr"
	"jobportal-api/internal/docstore"
	"jobportal-api/internal/models"
)

const Collection = "users"

// Store is the slice of the document store the credential service needs.
type Store interface {
	Insert(ctx context.Context, coll string, doc bson.M) (string, error)
	Update(ctx context.Context, coll, id string, fields bson.M) error
	FindOneByField(ctx context.Context, coll, field string, value any) (docstore.Doc, error)
	All(ctx context.Context, coll string) ([]docstore.Doc, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// Identity is what login and signup hand back to the client. Nothing
// server-side checks it afterwards; it is informational only.
type Identity struct {
	Username    string `json:"username"`
	IsAdmin     bool   `json:"isAdmin"`
	IsTempAdmin bool   `json:"isTempAdmin"`
}

// Entry is one row of the user admin table. Passwords exist on the stored
// record and are deliberately absent here.
type Entry struct {
	Username  string `json:"username"`
	IsAdmin   bool   `json:"isAdmin"`
	TempAdmin bool   `json:"tempadmin"`
	ID        string `json:"id"`
}

// Signup creates a user with both privilege flags off. Uniqueness is a
// pre-check query, not a storage constraint; concurrent signups can race.
func (s *Service) Signup(ctx context.Context, username, password string) (Identity, error) {
	if strings.TrimSpace(username) == "" {
		return Identity{}, apperr.InvalidInput("username is required", nil)
	}

	_, err := s.store.FindOneByField(ctx, Collection, "username", username)
	if err == nil {
		return Identity{}, apperr.Conflict("username already exists", nil)
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return Identity{}, err
	}

	doc, err := userDoc(models.User{
		Username:  username,
		Password:  password,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return Identity{}, err
	}
	if _, err := s.store.Insert(ctx, Collection, doc); err != nil {
		return Identity{}, err
	}

	s.logger.Info("user created", zap.String("username", username))
	return Identity{Username: username}, nil
}

// Login verifies the claimed identity by plain string equality against the
// stored password and returns the privilege flags.
func (s *Service) Login(ctx context.Context, username, password string) (Identity, error) {
	doc, err := s.store.FindOneByField(ctx, Collection, "username", username)
	if errors.Is(err, docstore.ErrNotFound) {
		return Identity{}, apperr.Unauthorized("invalid username or password", nil)
	}
	if err != nil {
		return Identity{}, err
	}

	u, err := userFromDoc(doc)
	if err != nil {
		return Identity{}, err
	}
	if u.Password != password {
		return Identity{}, apperr.Unauthorized("invalid username or password", nil)
	}

	return Identity{
		Username:    username,
		IsAdmin:     u.Admin,
		IsTempAdmin: u.TempAdmin,
	}, nil
}

// List projects every user down to the admin-table shape.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	docs, err := s.store.All(ctx, Collection)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		u, err := userFromDoc(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Username:  u.Username,
			IsAdmin:   u.Admin,
			TempAdmin: u.TempAdmin,
			ID:        u.ID,
		})
	}
	return entries, nil
}

// SetAdmin flips the full-admin flag on the named user.
func (s *Service) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	return s.setFlag(ctx, username, "admin", isAdmin)
}

// SetTempAdmin flips the provisional-admin flag on the named user.
func (s *Service) SetTempAdmin(ctx context.Context, username string, isTempAdmin bool) error {
	return s.setFlag(ctx, username, "tempadmin", isTempAdmin)
}

func (s *Service) setFlag(ctx context.Context, username, flag string, value bool) error {
	doc, err := s.store.FindOneByField(ctx, Collection, "username", username)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("user not found", err)
	}
	if err != nil {
		return err
	}

	err = s.store.Update(ctx, Collection, doc.ID, bson.M{
		flag:         value,
		"updated_at": s.now().UTC(),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("user not found", err)
	}
	if err != nil {
		return err
	}

	s.logger.Info("user flag updated",
		zap.String("username", username),
		zap.String("flag", flag),
		zap.Bool("value", value))
	return nil
}

// userDoc flattens a typed user into the stored document shape through
// its bson tags.
func userDoc(u models.User) (bson.M, error) {
	raw, err := bson.Marshal(u)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// userFromDoc is the reverse trip. Fields a legacy record lacks come back
// zero-valued, which reads as "not an admin".
func userFromDoc(d docstore.Doc) (models.User, error) {
	raw, err := bson.Marshal(d.Data)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := bson.Unmarshal(raw, &u); err != nil {
		return models.User{}, err
	}
	u.ID = d.ID
	return u, nil
}
