package util

import (
	"errors"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/config"

	"github.com/dgrijalva/jwt-go"
)

// 令牌类型，刷新令牌不能当作访问令牌使用
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// GenerateAccessToken 生成短期访问令牌
func GenerateAccessToken(userID int) (string, error) {
	return generateToken(userID, TokenTypeAccess,
		time.Duration(config.AppConfig.AccessTokenMinutes)*time.Minute)
}

// GenerateRefreshToken 生成长期刷新令牌
func GenerateRefreshToken(userID int) (string, error) {
	return generateToken(userID, TokenTypeRefresh,
		time.Duration(config.AppConfig.RefreshTokenDays)*24*time.Hour)
}

func generateToken(userID int, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 校验令牌并返回其中的用户ID，要求令牌类型匹配
func ValidateToken(tokenString, tokenType string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名算法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("无效的令牌")
	}
	if claims["type"] != tokenType {
		return 0, errors.New("令牌类型不匹配")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("无效的用户ID")
	}
	return int(userID), nil
}

// RefreshAccessToken 使用刷新令牌换取新的访问令牌
func RefreshAccessToken(refreshToken string) (string, error) {
	userID, err := ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return GenerateAccessToken(userID)
}
