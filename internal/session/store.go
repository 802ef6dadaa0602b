package session

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/models"
)

// CookieName is the browser cookie carrying the opaque session token.
const CookieName = "session_token"

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Store keeps sessions server-side in the database, keyed by an opaque
// token handed to the browser as an HttpOnly cookie.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// Create establishes a fresh session for the user. Any previous sessions
// for the same user are purged, so each login invalidates older cookies.
func (s *Store) Create(userID uint) (*models.Session, error) {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return nil, err
	}

	sess := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Get resolves a token to its session. Expired sessions are deleted on
// sight and reported as ErrExpired.
func (s *Store) Get(token string) (*models.Session, error) {
	var sess models.Session
	err := s.db.First(&sess, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		s.db.Delete(&sess)
		return nil, ErrExpired
	}
	return &sess, nil
}

// Clear removes the session row for a token. Clearing an unknown token is
// not an error.
func (s *Store) Clear(token string) error {
	return s.db.Delete(&models.Session{}, "token = ?", token).Error
}

// SetCookie attaches the session token to the response.
func (s *Store) SetCookie(c *gin.Context, sess *models.Session) {
	c.SetCookie(CookieName, sess.Token, int(s.ttl.Seconds()), "/", "", false, true)
}

// ClearCookie expires the session cookie on the browser.
func (s *Store) ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
