package api

import (
	"errors"
	"net/http"
	"strings"

	"recipebox/internal/auth"
	"recipebox/internal/models"
	"recipebox/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler contains API handlers
type Handler struct {
	db       *gorm.DB
	sessions *session.Store
}

// NewHandler creates a new API handler
func NewHandler(db *gorm.DB, sessions *session.Store) *Handler {
	return &Handler{
		db:       db,
		sessions: sessions,
	}
}

// Health returns service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SignupRequest represents a signup request. Required fields are pointers
// so an absent key can be told apart from an empty string.
type SignupRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Bio      string  `json:"bio"`
	ImageURL string  `json:"image_url"`
}

// Signup creates a new user account
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	// Validate required fields, reporting the first one missing or blank
	required := []struct {
		name  string
		value *string
	}{
		{"username", req.Username},
		{"password", req.Password},
	}
	for _, f := range required {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing or empty " + f.name})
			return
		}
	}

	hash, err := auth.HashPassword(*req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Username:     *req.Username,
		PasswordHash: hash,
		Bio:          req.Bio,
		ImageURL:     req.ImageURL,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// CheckSession returns the user behind the request's session cookie
func (h *Handler) CheckSession(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sess, err := h.sessions.Get(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := h.db.First(&user, sess.UserID).Error; err != nil {
		// Session points at a user that no longer exists
		h.sessions.Clear(token)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Login verifies credentials and establishes a session
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == nil || req.Password == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	var user models.User
	err := h.db.First(&user, "username = ?", *req.Username).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	// Same response for unknown user and wrong password, so the reply
	// never reveals which one was wrong
	if err != nil || !auth.CheckPassword(user.PasswordHash, *req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	sess, err := h.sessions.Create(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.sessions.SetCookie(c, sess)

	c.JSON(http.StatusOK, user.Public())
}

// Logout clears the session. Idempotent: logging out without a session
// still succeeds.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		h.sessions.Clear(token)
	}
	h.sessions.ClearCookie(c)
	c.Status(http.StatusNoContent)
}

// ListRecipes returns every recipe, visible to any authenticated user
func (h *Handler) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	if err := h.db.Order("id").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	out := make([]models.PublicRecipe, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipes[i].Public())
	}

	c.JSON(http.StatusOK, out)
}

// CreateRecipeRequest represents a recipe creation request. All fields are
// pointers so presence can be validated; minutes_to_complete in particular
// must distinguish an absent key from a zero value.
type CreateRecipeRequest struct {
	Title             *string `json:"title"`
	Instructions      *string `json:"instructions"`
	MinutesToComplete *int    `json:"minutes_to_complete"`
}

// CreateRecipe creates a recipe owned by the session's user
func (h *Handler) CreateRecipe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	var missing []string
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		missing = append(missing, "title")
	}
	if req.Instructions == nil || strings.TrimSpace(*req.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	if req.MinutesToComplete == nil {
		missing = append(missing, "minutes_to_complete")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	// Ownership always comes from the session, never from the body
	recipe := models.Recipe{
		Title:             *req.Title,
		Instructions:      *req.Instructions,
		MinutesToComplete: *req.MinutesToComplete,
		UserID:            userID,
	}
	if err := h.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe.Public())
}
