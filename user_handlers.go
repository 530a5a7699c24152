package main

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// loginUser handles POST /api/v1/user/login. The only accounts are the
// seeded admin and whatever an operator inserts by hand; on success the
// response carries a 24h JWT for the admin routes.
func loginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	var passwordHash string
	var isAdmin bool
	err := db.QueryRow("SELECT password_hash, is_admin FROM users WHERE username = ?", req.Username).Scan(&passwordHash, &isAdmin)
	switch {
	case err == sql.ErrNoRows:
		// Same response as a wrong password; don't leak which part failed.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user or wrong password"})
		return
	case err != nil:
		log.Printf("[ERROR] loginUser: lookup failed for %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !checkPasswordHash(req.Password, passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user or wrong password"})
		return
	}

	token, err := GenerateJWT(req.Username, isAdmin)
	if err != nil {
		log.Printf("[ERROR] loginUser: token signing failed for %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "is_admin": isAdmin})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
