package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
	"contact-book/internal/service"
)

// contextUserID is the gin context key under which the auth middleware stores
// the resolved caller identity.
const contextUserID = "userID"

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth        service.AuthService
	contacts    service.ContactService
	users       repository.UserRepository
	contactRepo repository.ContactRepository
	environment string
	logger      *logrus.Logger
}

func NewHandler(
	auth service.AuthService,
	contacts service.ContactService,
	users repository.UserRepository,
	contactRepo repository.ContactRepository,
	environment string,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		auth:        auth,
		contacts:    contacts,
		users:       users,
		contactRepo: contactRepo,
		environment: environment,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", h.index)

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/health", h.health)

		authed := api.Group("", h.requireAuth())
		{
			authed.POST("/logout", h.logout)
			authed.GET("/contacts", h.listContacts)
			authed.POST("/contacts", h.createContact)
			authed.PUT("/contacts/:id", h.updateContact)
			authed.DELETE("/contacts/:id", h.deleteContact)
			authed.GET("/contacts/suggestions", h.suggestions)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth guards owner-scoped routes. Requests without a valid bearer
// token are rejected before any store access happens.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing or invalid authorization header"})
			return
		}

		userID, err := h.auth.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthenticated"})
				return
			}
			h.logger.Errorf("resolve identity: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func callerID(c *gin.Context) int64 {
	return c.GetInt64(contextUserID)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ContactResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "contact book API",
		"version":     "1.0.0",
		"environment": h.environment,
		"endpoints": gin.H{
			"health":      "/api/health",
			"register":    "/api/register",
			"login":       "/api/login",
			"contacts":    "/api/contacts",
			"suggestions": "/api/contacts/suggestions",
		},
	})
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "registration successful",
		"user_id": user.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "login successful",
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logout successful",
	})
}

func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context(), callerID(c), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = contactToResponse(contacts[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
		"count":   len(resp),
	})
}

func (h *Handler) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	id, err := h.contacts.Create(c.Request.Context(), callerID(c), req.Name, req.Phone, req.Email, req.Address)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "contact created",
		"id":      id,
	})
}

func (h *Handler) updateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if err := h.contacts.Update(c.Request.Context(), callerID(c), id, req.Name, req.Phone, req.Email, req.Address); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "contact updated",
	})
}

func (h *Handler) deleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "contact deleted",
	})
}

func (h *Handler) suggestions(c *gin.Context) {
	names, err := h.contacts.Suggest(c.Request.Context(), callerID(c), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, names)
}

func (h *Handler) health(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().Format(time.RFC3339)

	usersCount, usersErr := h.users.Count(ctx)
	contactsCount, contactsErr := h.contactRepo.Count(ctx)
	if usersErr != nil || contactsErr != nil {
		h.logger.Errorf("health check: %v %v", usersErr, contactsErr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": now,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"database":       "connected",
		"users_count":    usersCount,
		"contacts_count": contactsCount,
		"timestamp":      now,
		"environment":    h.environment,
	})
}

func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid contact id"})
		return 0, false
	}
	return id, true
}

func contactToResponse(contact domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Phone:     contact.Phone,
		Email:     contact.Email,
		Address:   contact.Address,
		CreatedAt: contact.CreatedAt.Format(time.RFC3339),
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is logged in full and surfaced as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicatePhone):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "contact not found"})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
