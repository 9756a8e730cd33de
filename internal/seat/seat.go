package seat

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericogr/dungeon-party/internal/constants"
)

var (
	ErrInvalidToken = errors.New("seat: invalid token")
	ErrExpiredToken = errors.New("seat: token expired")
)

// Claims binds a caller to one player seat of one game.
type Claims struct {
	GameID   string
	PlayerID string
	Expires  time.Time
}

type seatClaims struct {
	jwt.RegisteredClaims
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// Issuer signs and verifies seat tokens with HS256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an issuer. An empty secret gets a random in-memory one,
// which means tokens do not survive a restart.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := crand.Read(key); err != nil {
			return nil, fmt.Errorf("generate seat secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{secret: key, ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) Issue(gameID, playerID string) (string, error) {
	now := i.now()
	claims := seatClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.SeatIssuer,
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		GameID:   gameID,
		PlayerID: playerID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) Verify(token string) (*Claims, error) {
	var parsed seatClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.SeatIssuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if parsed.GameID == "" || parsed.PlayerID == "" {
		return nil, ErrInvalidToken
	}
	c := &Claims{GameID: parsed.GameID, PlayerID: parsed.PlayerID}
	if parsed.ExpiresAt != nil {
		c.Expires = parsed.ExpiresAt.Time
	}
	return c, nil
}
