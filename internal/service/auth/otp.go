package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpDigits = 6

// OTPStore keeps one pending code hash per email address.
type OTPStore interface {
	Save(ctx context.Context, email, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// ErrOTPNotFound is returned by Get when nothing is pending or the code expired.
var ErrOTPNotFound = errors.New("otp not found")

type redisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func otpKey(email string) string {
	return "otp:" + strings.ToLower(email)
}

func (s *redisOTPStore) Save(ctx context.Context, email, codeHash string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(email), codeHash, ttl).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, email string) (string, error) {
	val, err := s.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	return val, err
}

func (s *redisOTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKey(email)).Err()
}

func generateOTP() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
