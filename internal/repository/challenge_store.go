package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/manvaasam/manvaasam-server/internal/models"
)

// challengeGrace keeps an expired challenge retrievable for a while after
// its logical expiry so verification can report "expired" instead of
// "not found".
const challengeGrace = 5 * time.Minute

// ChallengeStore holds outstanding OTP challenges keyed by phone number.
// At most one challenge per phone; Put overwrites.
type ChallengeStore interface {
	Put(ctx context.Context, phone string, challenge *models.OTPChallenge) error
	// Get returns (nil, nil) when no challenge is stored for the phone.
	Get(ctx context.Context, phone string) (*models.OTPChallenge, error)
	Delete(ctx context.Context, phone string) error
}

// RedisChallengeStore keeps challenges in Redis with a TTL slightly past
// the challenge expiry.
type RedisChallengeStore struct {
	client *redis.Client
}

// NewRedisChallengeStore creates a Redis-backed challenge store
func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

func challengeKey(phone string) string {
	return "otp:" + phone
}

func (s *RedisChallengeStore) Put(ctx context.Context, phone string, challenge *models.OTPChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}

	ttl := time.Until(challenge.Expires) + challengeGrace
	return s.client.Set(ctx, challengeKey(phone), data, ttl).Err()
}

func (s *RedisChallengeStore) Get(ctx context.Context, phone string) (*models.OTPChallenge, error) {
	data, err := s.client.Get(ctx, challengeKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No challenge stored
		}
		return nil, err
	}

	var challenge models.OTPChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}

	return &challenge, nil
}

func (s *RedisChallengeStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, challengeKey(phone)).Err()
}

// MemoryChallengeStore is an in-process challenge store used when Redis is
// not configured, and in tests. Entries past expiry plus grace are dropped
// lazily on access.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

// NewMemoryChallengeStore creates an in-memory challenge store
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]*models.OTPChallenge),
	}
}

func (s *MemoryChallengeStore) Put(ctx context.Context, phone string, challenge *models.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *challenge
	s.challenges[phone] = &copied
	return nil
}

func (s *MemoryChallengeStore) Get(ctx context.Context, phone string) (*models.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[phone]
	if !ok {
		return nil, nil
	}

	if time.Now().After(challenge.Expires.Add(challengeGrace)) {
		delete(s.challenges, phone)
		return nil, nil
	}

	copied := *challenge
	return &copied, nil
}

func (s *MemoryChallengeStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, phone)
	return nil
}
