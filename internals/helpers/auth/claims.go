package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
)

/* ============================================
   Locals Keys (set by the auth middleware)
   ============================================ */

const (
	LocUserID   = "user_id"   // string uuid
	LocRole     = "user_role" // string
	LocRegionID = "region_id" // string uuid, empty for admins without region
	LocUserName = "user_name" // string
	LocToken    = "access_token"
	LocTokenExp = "access_token_exp" // time.Time
)

// Claims is the access token payload.
type Claims struct {
	UserID   string `json:"id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	RegionID string `json:"region_id,omitempty"`
	jwt.RegisteredClaims
}

var ErrTokenInvalid = errors.New("token invalid")

// SignAccessToken issues an HS256 access token valid for ttl from now.
func SignAccessToken(secret string, userID uuid.UUID, userName, role string, regionID *uuid.UUID, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := Claims{
		UserID:   userID.String(),
		UserName: userName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	if regionID != nil {
		claims.RegionID = regionID.String()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ParseAccessToken verifies signature and expiry (with a small clock skew).
func ParseAccessToken(secret, raw string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || now.After(claims.ExpiresAt.Add(30*time.Second)) {
		return nil, jwt.ErrTokenExpired
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// BearerToken reads "Authorization: Bearer <tok>" with the access_token cookie
// as fallback.
func BearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("no token provided")
	}
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("empty token")
	}
	return tok, nil
}

/* ============================================
   Locals readers
   ============================================ */

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocRole).(string)
	return role
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleAdmin
}

// CanAccessRegion: admins see every region; others only their own.
func CanAccessRegion(c *fiber.Ctx, regionID uuid.UUID) bool {
	if IsAdmin(c) {
		return true
	}
	own, _ := c.Locals(LocRegionID).(string)
	return own != "" && strings.EqualFold(own, regionID.String())
}
