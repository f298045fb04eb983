package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"leanacademy/internal/bus"
	"leanacademy/internal/store"
	"leanacademy/pkg/auth"
	"leanacademy/pkg/domain"
)

// Source reports which store satisfied a read.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Config wires the stores and collaborators for the facade.
type Config struct {
	// Remote is nil when no real database is configured; the app then runs
	// entirely against the in-memory store.
	Remote        store.Store
	Local         *store.MemoryStore
	Changes       *bus.Bus
	Sessions      store.SessionStore
	RemoteTimeout time.Duration
	Logger        *slog.Logger
}

// App routes every data operation to the remote database or the in-memory
// fallback. Reads degrade to local data on remote failure; writes never
// fall back silently, because a shadow write would desynchronize the two
// stores without anyone noticing.
type App struct {
	remote        store.Store
	local         *store.MemoryStore
	changes       *bus.Bus
	sessions      store.SessionStore
	remoteTimeout time.Duration
	log           *slog.Logger
}

// New constructs the facade and connects local mutations to the change bus.
func New(cfg Config) (*App, error) {
	if cfg.Local == nil {
		return nil, errors.New("local store required")
	}
	if cfg.Changes == nil {
		return nil, errors.New("change bus required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store required")
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.Local.SetNotifier(cfg.Changes.Publish)
	return &App{
		remote:        cfg.Remote,
		local:         cfg.Local,
		changes:       cfg.Changes,
		sessions:      cfg.Sessions,
		remoteTimeout: cfg.RemoteTimeout,
		log:           cfg.Logger,
	}, nil
}

// RemoteAvailable reports whether a remote store was configured. Cheap and
// side-effect-free; consulted before every operation.
func (a *App) RemoteAvailable() bool {
	return a.remote != nil
}

// Changes exposes the bus so callers can subscribe for local-data refreshes.
func (a *App) Changes() *bus.Bus {
	return a.changes
}

type pinger interface {
	Ping(ctx context.Context) error
}

// TestConnection performs a real round trip against the remote store. It is
// for status display only and never drives routing decisions.
func (a *App) TestConnection(ctx context.Context) bool {
	if a.remote == nil {
		return false
	}
	p, ok := a.remote.(pinger)
	if !ok {
		return true
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	if err := p.Ping(rctx); err != nil {
		a.log.Warn("database connection check failed", "err", err)
		return false
	}
	return true
}

// remoteCtx bounds every remote call so a hung backend cannot leave the
// caller loading forever.
func (a *App) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.remoteTimeout)
}

// readFallback logs a failed remote read before the caller degrades to
// local data.
func (a *App) readFallback(op string, err error) {
	a.log.Warn("remote read failed, serving local data", "op", op, "err", err)
}

// writeErr logs a failed remote write and wraps it with the operation name.
func (a *App) writeErr(op string, err error) error {
	a.log.Error("remote write failed", "op", op, "err", err)
	return fmt.Errorf("failed to %s: %w", op, err)
}

// admin auth

// AdminLogin verifies credentials against whichever store is active and
// issues a session token. Login follows write-path routing: a remote
// failure surfaces as an error instead of silently consulting local state.
func (a *App) AdminLogin(ctx context.Context, username, password string) (domain.AdminUser, string, error) {
	var (
		user  domain.AdminUser
		found bool
		err   error
	)
	if a.remote == nil {
		user, found, err = a.local.GetAdminUserByUsername(ctx, username)
	} else {
		rctx, cancel := a.remoteCtx(ctx)
		defer cancel()
		user, found, err = a.remote.GetAdminUserByUsername(rctx, username)
	}
	if err != nil {
		return domain.AdminUser{}, "", a.writeErr("log in", err)
	}
	if !found || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.AdminUser{}, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.AdminUser{}, "", ErrAccountDisabled
	}

	now := time.Now().UTC()
	patch := domain.AdminUserPatch{LastLogin: &now}
	if a.remote == nil {
		user, _, _ = a.local.UpdateAdminUser(ctx, user.ID, patch)
	} else {
		rctx, cancel := a.remoteCtx(ctx)
		defer cancel()
		user, _, err = a.remote.UpdateAdminUser(rctx, user.ID, patch)
		if err != nil {
			return domain.AdminUser{}, "", a.writeErr("log in", err)
		}
	}

	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.AdminUser{}, "", a.writeErr("log in", err)
	}
	return user, token, nil
}

// AdminLogout invalidates a session token.
func (a *App) AdminLogout(token string) error {
	return a.sessions.DeleteSession(token)
}

// VerifySession resolves a session token to an admin user ID.
func (a *App) VerifySession(token string) (string, bool) {
	userID, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return "", false
	}
	return userID, true
}

// admin users

func (a *App) ListAdminUsers(ctx context.Context) ([]domain.AdminUser, Source) {
	if a.remote == nil {
		users, _ := a.local.ListAdminUsers(ctx)
		return users, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	users, err := a.remote.ListAdminUsers(rctx)
	if err != nil {
		a.readFallback("fetch admin users", err)
		users, _ := a.local.ListAdminUsers(ctx)
		return users, SourceLocal
	}
	return users, SourceRemote
}

// CreateAdminUser hashes the password and rejects duplicate usernames.
func (a *App) CreateAdminUser(ctx context.Context, username, email, password string, role domain.AdminRole) (domain.AdminUser, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.AdminUser{}, a.writeErr("create admin user", err)
	}
	draft := domain.AdminUserDraft{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	if a.remote == nil {
		_, exists, _ := a.local.GetAdminUserByUsername(ctx, username)
		if exists {
			return domain.AdminUser{}, ErrUsernameTaken
		}
		user, _ := a.local.CreateAdminUser(ctx, draft)
		return user, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	_, exists, err := a.remote.GetAdminUserByUsername(rctx, username)
	if err != nil {
		return domain.AdminUser{}, a.writeErr("create admin user", err)
	}
	if exists {
		return domain.AdminUser{}, ErrUsernameTaken
	}
	user, err := a.remote.CreateAdminUser(rctx, draft)
	if err != nil {
		return domain.AdminUser{}, a.writeErr("create admin user", err)
	}
	return user, nil
}

func (a *App) UpdateAdminUser(ctx context.Context, id string, patch domain.AdminUserPatch) (domain.AdminUser, bool, error) {
	if a.remote == nil {
		user, found, _ := a.local.UpdateAdminUser(ctx, id, patch)
		return user, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	user, found, err := a.remote.UpdateAdminUser(rctx, id, patch)
	if err != nil {
		return domain.AdminUser{}, false, a.writeErr("update admin user", err)
	}
	return user, found, nil
}

// DeleteAdminUser refuses to remove the protected seed account. The guard
// resolves the target against the same store the delete will hit; a failed
// lookup aborts the delete rather than degrading to local data, where the
// ids would never match the remote row.
func (a *App) DeleteAdminUser(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		users, _ := a.local.ListAdminUsers(ctx)
		if isProtectedAdmin(users, id) {
			return false, ErrProtectedAdmin
		}
		removed, _ := a.local.DeleteAdminUser(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	users, err := a.remote.ListAdminUsers(rctx)
	if err != nil {
		return false, a.writeErr("delete admin user", err)
	}
	if isProtectedAdmin(users, id) {
		return false, ErrProtectedAdmin
	}
	removed, err := a.remote.DeleteAdminUser(rctx, id)
	if err != nil {
		return false, a.writeErr("delete admin user", err)
	}
	return removed, nil
}

func isProtectedAdmin(users []domain.AdminUser, id string) bool {
	for _, u := range users {
		if u.ID == id && u.Username == store.ProtectedAdminUsername {
			return true
		}
	}
	return false
}
