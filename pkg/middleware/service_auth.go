package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims はサービス間認証トークンのクレームを表す。
// Issuerに呼び出し元サービス名、Audienceに呼び出し先サービス名を持つ。
type ServiceClaims struct {
	jwt.RegisteredClaims
}

// GenerateServiceToken は呼び出し元サービス用の短命なJWTトークンを生成する。
func GenerateServiceToken(secret, issuer, audience string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("署名用シークレットが空です")
	}

	now := time.Now()
	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// ServiceAuth はサービス間認証トークンを検証するGinミドルウェアを返す。
// audienceに自サービス名を指定し、宛先が異なるトークンは拒否する。
// 検証に成功した場合、コンテキストに "caller" を設定する。
func ServiceAuth(secret, audience string) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorizationヘッダーが必要です",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer トークン形式が不正です",
			})
			return
		}

		claims := &ServiceClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}

		c.Set("caller", claims.Issuer)
		c.Next()
	}
}

// GetCaller はGinコンテキストから呼び出し元サービス名を取得する。
// ServiceAuthミドルウェアが事前に適用されている必要がある。
func GetCaller(c *gin.Context) string {
	caller, _ := c.Get("caller")
	if name, ok := caller.(string); ok {
		return name
	}
	return ""
}
