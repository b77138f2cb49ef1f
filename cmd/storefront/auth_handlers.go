package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fashion-fuel/storefront-api/internal/auth"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/user"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSessionCookie(c *gin.Context, tokens *auth.Tokens, value string) {
	c.SetCookie(auth.SessionCookie, value, int(tokens.TTL().Seconds()), "/", "", false, true)
}

// @Summary  Register a new customer account
// @Tags     auth
// @Router   /auth/register [post]
func registerHandler(users user.Repository, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" || req.FirstName == "" {
			httpx.Fail(c, http.StatusBadRequest, "email, password and first_name are required")
			return
		}
		if len(req.Password) < 8 {
			httpx.Fail(c, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not register")
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			Role:         auth.RoleUser,
		}
		cust := &user.Customer{
			UserID:    u.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		}
		if err := users.Create(c.Request.Context(), u, cust); err != nil {
			if err == user.ErrAlreadyExist {
				httpx.Fail(c, http.StatusBadRequest, "email already registered")
				return
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not register")
			return
		}
		tok, err := tokens.Sign(u.ID, u.Role)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not sign session")
			return
		}
		setSessionCookie(c, tokens, tok)
		httpx.OK(c, http.StatusCreated, user.Account{User: *u, Customer: cust})
	}
}

// @Summary  Log in and receive the session cookie
// @Tags     auth
// @Router   /auth/login [post]
func loginHandler(users user.Repository, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			httpx.Fail(c, http.StatusBadRequest, "email and password are required")
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			// same answer for unknown email and wrong password
			httpx.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		tok, err := tokens.Sign(u.ID, u.Role)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not sign session")
			return
		}
		setSessionCookie(c, tokens, tok)
		httpx.OK(c, http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "role": u.Role})
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
		httpx.OK(c, http.StatusOK, gin.H{"logged_out": true})
	}
}

// @Summary  Current session's account
// @Tags     auth
// @Router   /auth/me [get]
func meHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "user not found")
			return
		}
		cust, err := users.GetCustomer(c.Request.Context(), uid)
		if err != nil {
			cust = nil // admin accounts may have no profile
		}
		httpx.OK(c, http.StatusOK, user.Account{User: *u, Customer: cust})
	}
}

func updateProfileHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Phone     string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		cust := &user.Customer{
			UserID:    c.GetString("uid"),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		}
		if err := users.UpdateCustomer(c.Request.Context(), cust); err != nil {
			if err == user.ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "profile not found")
				return
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not update profile")
			return
		}
		out, err := users.GetCustomer(c.Request.Context(), cust.UserID)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not reload profile")
			return
		}
		httpx.OK(c, http.StatusOK, out)
	}
}
