package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/pressart/storefront-api/internal/config"
	redisdb "github.com/pressart/storefront-api/internal/infrastructure/database/redis"
	"github.com/pressart/storefront-api/internal/pkg/auth"
	"github.com/pressart/storefront-api/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *auth.JWTManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redisdb.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	cfg := &config.Config{JWT: config.JWTConfig{Secret: strings.Repeat("k", 32), ExpiresIn: time.Hour}}
	jwtManager := auth.NewJWTManager(cfg)
	svc := NewService(db, auth.TrustedProfileVerifier{}, jwtManager, auth.NewDenylist(client), logger.Discard())
	return svc, db, jwtManager
}

func TestAuthenticateGoogle(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		seed      *User
		profile   auth.GoogleProfile
		wantErr   error
		wantUsers int64
		wantID    uint
	}{
		"creates new user": {
			profile:   auth.GoogleProfile{Subject: "g-1", Email: "Ana@Example.com", Name: "Ana"},
			wantUsers: 1,
			wantID:    1,
		},
		"finds by google id": {
			seed:      &User{GoogleID: "g-1", Email: "ana@example.com", Name: "Old"},
			profile:   auth.GoogleProfile{Subject: "g-1", Email: "ana@example.com", Name: "Ana"},
			wantUsers: 1,
			wantID:    1,
		},
		"links by email": {
			seed:      &User{GoogleID: "legacy", Email: "ana@example.com", Name: "Ana"},
			profile:   auth.GoogleProfile{Subject: "g-2", Email: "ANA@example.com", Name: "Ana R"},
			wantUsers: 1,
			wantID:    1,
		},
		"missing subject": {
			profile: auth.GoogleProfile{Email: "ana@example.com"},
			wantErr: ErrInvalidIdentity,
		},
		"missing email": {
			profile: auth.GoogleProfile{Subject: "g-3"},
			wantErr: ErrInvalidIdentity,
		},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			svc, db, jwtManager := newTestService(t)
			ctx := context.Background()
			if tt.seed != nil {
				if err := db.Create(tt.seed).Error; err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			profile := tt.profile
			resp, err := svc.AuthenticateGoogle(ctx, &GoogleAuthRequest{GoogleToken: "tok", UserData: &profile})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var count int64
			db.Model(&User{}).Count(&count)
			if count != tt.wantUsers {
				t.Fatalf("want %d users, got %d", tt.wantUsers, count)
			}
			if resp.User.ID != tt.wantID || resp.User.GoogleID != tt.profile.Subject || resp.User.Name != tt.profile.Name {
				t.Fatalf("unexpected user: %+v", resp.User)
			}
			if resp.User.Email != strings.ToLower(resp.User.Email) {
				t.Fatalf("email should be lower-case: %q", resp.User.Email)
			}
			if resp.User.LastLogin.IsZero() {
				t.Fatal("last login not set")
			}

			claims, err := jwtManager.ValidateToken(resp.Token)
			if err != nil {
				t.Fatalf("issued token invalid: %v", err)
			}
			if claims.UserID != resp.User.ID {
				t.Fatalf("token for wrong user: %d", claims.UserID)
			}
		})
	}
}

func TestAuthenticateGoogleRejectsBadToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.AuthenticateGoogle(context.Background(), &GoogleAuthRequest{
		UserData: &auth.GoogleProfile{Subject: "g", Email: "e@x.y"},
	})
	if !errors.Is(err, auth.ErrInvalidGoogleToken) {
		t.Fatalf("expected ErrInvalidGoogleToken, got %v", err)
	}
}

func TestGetProfileAndLogout(t *testing.T) {
	t.Parallel()

	svc, _, jwtManager := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	resp, err := svc.AuthenticateGoogle(ctx, &GoogleAuthRequest{
		GoogleToken: "tok",
		UserData:    &auth.GoogleProfile{Subject: "g-9", Email: "bo@example.com"},
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resp.User.Name != "bo@example.com" {
		t.Fatalf("name should fall back to email, got %q", resp.User.Name)
	}

	u, err := svc.GetProfile(ctx, resp.User.ID)
	if err != nil || u.Email != "bo@example.com" {
		t.Fatalf("get profile: %+v %v", u, err)
	}

	claims, _ := jwtManager.ValidateToken(resp.Token)
	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.denylist.Check(ctx, claims.ID); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Fatalf("token should be revoked, got %v", err)
	}
}
