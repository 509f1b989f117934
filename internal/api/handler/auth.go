package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware.
const (
	ctxUserID = "user_id"
	ctxPseudo = "pseudo"
	ctxRole   = "role"
)

// generateJWT issues a token carrying the caller's identity and role. The
// upstream login flow is out of scope here; this service only needs the
// resulting claims.
func (h *Handler) generateJWT(userID, pseudo string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":    userID,
		"pseudo": pseudo,
		"role":   string(role),
		"exp":    time.Now().Add(time.Hour * 72).Unix(),
		"iss":    "visioblog-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// GetToken exchanges a known user or admin id for a signed token. It stands
// in for the blog's real login, which authenticates upstream of this service.
func (h *Handler) GetToken(c *gin.Context) {
	id := c.Query("id")
	role := models.Role(c.DefaultQuery("role", string(models.RoleUser)))

	var pseudo string
	switch role {
	case models.RoleUser:
		user, err := h.Storage.GetUserByID(id)
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		pseudo = user.Pseudo
	case models.RoleAdmin:
		admin, err := h.Storage.GetAdminByID(id)
		if errors.Is(err, storage.ErrAdminNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		pseudo = admin.Pseudo
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	token, err := h.generateJWT(id, pseudo, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// parseToken validates the token string and returns the identity claims.
func (h *Handler) parseToken(tokenString string) (userID, pseudo string, role models.Role, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", errors.New("invalid claims")
	}
	userID, _ = claims["sub"].(string)
	pseudo, _ = claims["pseudo"].(string)
	roleStr, _ := claims["role"].(string)
	if userID == "" || roleStr == "" {
		return "", "", "", errors.New("incomplete claims")
	}
	return userID, pseudo, models.Role(roleStr), nil
}

// bearerToken pulls the token out of the Authorization header, falling back
// to the "token" query parameter for websocket clients that cannot set
// headers.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthRequired populates the caller's identity from the token or aborts 401.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
			return
		}

		userID, pseudo, role, err := h.parseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxPseudo, pseudo)
		c.Set(ctxRole, role)
		c.Next()
	}
}

// AdminRequired aborts 403 unless the authenticated caller is an admin.
func (h *Handler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, ok := c.Get(ctxRole); !ok || role.(models.Role) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func callerIdentity(c *gin.Context) (string, models.Role) {
	userID := c.GetString(ctxUserID)
	role, _ := c.Get(ctxRole)
	r, _ := role.(models.Role)
	return userID, r
}
