package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	usersvc "marketplace/internal/service/user"
)

const userCtxKey = "authenticatedUser"

// authMiddleware resolves the bearer token into a user and stores it in
// the request context.
func authMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			jsonError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

// requireRole gates a route group to one account role.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || u.Role != role {
			jsonError(c, http.StatusForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func signupHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u, err := users.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				jsonError(c, http.StatusConflict, "email already registered")
				return
			}
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u, access, refresh, err := users.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, usersvc.ErrInvalidCredentials) {
				jsonError(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			jsonError(c, http.StatusInternalServerError, "login failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":          u,
			"access_token":  access,
			"refresh_token": refresh,
			"expires_in":    users.AccessTTLSeconds(),
		})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, currentUser(c))
	}
}
