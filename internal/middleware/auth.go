package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wellscan/patient-portal/internal/config"
)

const ContextPatientID = "patientID"

// TokenExtractor yields a credential from one location, or "" to defer to the
// next extractor in the chain.
type TokenExtractor struct {
	Name    string
	Extract func(c *gin.Context) string
}

// TokenExtractors is the fixed credential lookup order. Clients send the
// bearer header; browser sessions fall back to the cookies the login handler
// sets; X-Auth-Token covers proxies that strip Authorization. The order is
// load-bearing — do not append ad hoc.
var TokenExtractors = []TokenExtractor{
	{
		Name: "authorization_header",
		Extract: func(c *gin.Context) string {
			header := c.GetHeader("Authorization")
			if header == "" {
				return ""
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return ""
			}
			return parts[1]
		},
	},
	{
		Name: "token_cookie",
		Extract: func(c *gin.Context) string {
			token, _ := c.Cookie("token")
			return token
		},
	},
	{
		Name: "auth_token_cookie",
		Extract: func(c *gin.Context) string {
			token, _ := c.Cookie("authToken")
			return token
		},
	},
	{
		Name: "x_auth_token_header",
		Extract: func(c *gin.Context) string {
			return c.GetHeader("X-Auth-Token")
		},
	},
}

// ExtractToken walks the chain in priority order.
func ExtractToken(c *gin.Context) (string, bool) {
	for _, ex := range TokenExtractors {
		if token := ex.Extract(c); token != "" {
			return token, true
		}
	}
	return "", false
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := ExtractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		patientID, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextPatientID, uint(patientID))
		c.Next()
	}
}
