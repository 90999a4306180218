package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Bumblebig/UniSupport/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrSessionExpired = errors.New("session: expired or revoked")

// SessionManager issues and verifies session tokens. Tokens are JWTs
// whose server-side half lives in Redis with a TTL, so logout and expiry
// revoke a token before its embedded exp would.
type SessionManager struct {
	rdb    *redis.Client
	prefix string
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	subs    map[int]func(models.SessionEvent)
	nextSub int
}

func NewSessionManager(addr, password string, db int, prefix, secret string, ttl time.Duration) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &SessionManager{
		rdb:    client,
		prefix: prefix,
		secret: []byte(secret),
		ttl:    ttl,
		subs:   make(map[int]func(models.SessionEvent)),
	}, nil
}

// Issue creates a session for uid and returns the signed token
func (m *SessionManager) Issue(uid string) (string, time.Time, error) {
	jti := uuid.NewString()
	expireAt := time.Now().Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"jti": jti,
		"exp": expireAt.Unix(),
	})
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := m.rdb.Set(context.Background(), m.sessionKey(jti), uid, m.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store session: %w", err)
	}

	m.notify(models.SessionEvent{UID: uid, Active: true})
	return tokenString, expireAt, nil
}

// Verify checks a token's signature and that its session is still live,
// and returns the owner it belongs to
func (m *SessionManager) Verify(tokenString string) (string, error) {
	uid, jti, err := m.parse(tokenString)
	if err != nil {
		return "", err
	}

	stored, err := m.rdb.Get(context.Background(), m.sessionKey(jti)).Result()
	if err == redis.Nil {
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if stored != uid {
		return "", ErrSessionExpired
	}

	return uid, nil
}

// Revoke deletes the server-side session and notifies subscribers
func (m *SessionManager) Revoke(tokenString string) error {
	uid, jti, err := m.parse(tokenString)
	if err != nil {
		return err
	}

	if err := m.rdb.Del(context.Background(), m.sessionKey(jti)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.notify(models.SessionEvent{UID: uid, Active: false})
	return nil
}

// Subscribe registers fn for session change notifications and returns a
// function that unsubscribes it
func (m *SessionManager) Subscribe(fn func(models.SessionEvent)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *SessionManager) Close() error {
	return m.rdb.Close()
}

func (m *SessionManager) notify(ev models.SessionEvent) {
	m.mu.Lock()
	subs := make([]func(models.SessionEvent), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (m *SessionManager) sessionKey(jti string) string {
	return m.prefix + "session:" + jti
}

func (m *SessionManager) parse(tokenString string) (uid, jti string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", "", ErrSessionExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrSessionExpired
	}
	uid, ok = claims["uid"].(string)
	if !ok || uid == "" {
		return "", "", ErrSessionExpired
	}
	jti, ok = claims["jti"].(string)
	if !ok || jti == "" {
		return "", "", ErrSessionExpired
	}
	return uid, jti, nil
}
