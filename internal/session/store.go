package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CookieName is the HTTP cookie used to store the session token.
const CookieName = "chatfront_session"

// keyPrefix is the Redis key prefix for session data.
const keyPrefix = "session:"

// tokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const tokenBytes = 32

// Store reads and writes LocalSession records in Redis. It is the single
// point of access to session state; handlers never touch Redis directly.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given Redis client and TTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Load fetches the session for a token. A missing or expired token
// returns (nil, nil); the middleware creates a fresh session in that case.
func (st *Store) Load(ctx context.Context, token string) (*LocalSession, error) {
	data, err := st.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session from redis: %w", err)
	}

	var sess LocalSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshaling session: %w", err)
	}
	sess.Token = token

	return &sess, nil
}

// Save writes the session back to Redis, refreshing its TTL.
func (st *Store) Save(ctx context.Context, sess *LocalSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := st.rdb.Set(ctx, keyPrefix+sess.Token, data, st.ttl).Err(); err != nil {
		return fmt.Errorf("storing session in redis: %w", err)
	}

	return nil
}

// Delete removes a session from Redis, logging the user out.
func (st *Store) Delete(ctx context.Context, token string) error {
	if err := st.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session from redis: %w", err)
	}
	return nil
}

// New creates an empty session under a freshly generated token and
// persists it.
func (st *Store) New(ctx context.Context) (*LocalSession, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	sess := &LocalSession{
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	if err := st.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// TTL returns the configured session lifetime. Used for the cookie MaxAge.
func (st *Store) TTL() time.Duration {
	return st.ttl
}

// generateToken creates a cryptographically random hex-encoded token.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
