package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ContextSessionID = "session_id"
	ContextUserID    = "user_id"

	AccessTokenCookie  = "access_token"
	GuestSessionCookie = "cart_session"

	guestCookieMaxAge = 60 * 60 * 24 * 30
)

// Session resolves the storage scope of the request. A valid access token
// scopes state to the user, otherwise a guest cookie is issued and reused.
func Session(secret string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Signed-in user
		if tokenString, err := c.Cookie(AccessTokenCookie); err == nil && tokenString != "" {
			userID, err := parseUserID(tokenString, secret)
			if err != nil {
				abort(c, ErrInvalidToken)
				return
			}
			c.Set(ContextUserID, userID)
			c.Set(ContextSessionID, "user-"+userID)
			c.Next()
			return
		}

		// 2. Guest with an existing cookie
		sid, err := c.Cookie(GuestSessionCookie)
		if _, perr := uuid.Parse(sid); err != nil || perr != nil {
			// 3. First visit
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(GuestSessionCookie, sid, guestCookieMaxAge, "/", "", secureCookie, true)
		}

		c.Set(ContextSessionID, "guest-"+sid)
		c.Next()
	}
}

func parseUserID(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// SessionID returns the scope set by Session, or "" when the middleware did not run.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
