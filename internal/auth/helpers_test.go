package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/firebase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-that-is-long-enough-000"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:                testSecret,
		AccessTokenExpiry:           15 * time.Minute,
		RefreshTokenExpiry:          7 * 24 * time.Hour,
		FirebaseSessionCookieExpiry: 5 * 24 * time.Hour,
		CookieSameSite:              "lax",
	}
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

type sessionFixture struct {
	tokens   *JWTService
	store    *RedisRefreshStore
	mr       *miniredis.Miniredis
	firebase *fakeFirebase
	manager  *SessionManager
}

func setupSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	client, mr := setupTestRedis(t)
	f := &sessionFixture{
		tokens:   NewJWTService(testConfig(), zap.NewNop()),
		store:    NewRedisRefreshStore(client),
		mr:       mr,
		firebase: &fakeFirebase{cookies: map[string]*firebase.Identity{}},
	}
	f.manager = NewSessionManager(f.tokens, f.store, f.firebase, zap.NewNop())
	return f
}

// fakeFirebase accepts ID tokens of the form "id:<uid>" and the session
// cookies registered in cookies.
type fakeFirebase struct {
	cookies map[string]*firebase.Identity
	revoked []string
}

func (f *fakeFirebase) VerifyIDToken(_ context.Context, idToken string) (*firebase.Identity, error) {
	if len(idToken) < 4 || idToken[:3] != "id:" {
		return nil, errors.New("bad id token")
	}
	uid := idToken[3:]
	return &firebase.Identity{UID: uid, Email: uid + "@example.com", Name: "Firebase " + uid}, nil
}

func (f *fakeFirebase) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	id, err := f.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	cookie := "cookie-" + id.UID
	id.ExpiresAt = time.Now().Add(expiresIn)
	f.cookies[cookie] = id
	return cookie, nil
}

func (f *fakeFirebase) VerifySessionCookie(_ context.Context, cookie string) (*firebase.Identity, error) {
	id, ok := f.cookies[cookie]
	if !ok {
		return nil, errors.New("unknown session cookie")
	}
	return id, nil
}

func (f *fakeFirebase) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	for k, id := range f.cookies {
		if id.UID == uid {
			delete(f.cookies, k)
		}
	}
	return nil
}
