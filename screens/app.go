package screens

import (
	"avatar-chat/domain/account"
	"avatar-chat/domain/event"
	"context"
	"log/slog"
	"time"
)

const DefaultRetryDelay = 5 * time.Second

// App establishes the session when the application starts.
type App struct {
	log         *slog.Logger
	interactor  AppInteractor
	retryDelay  time.Duration
	maxAttempts int
}

// NewApp builds the startup flow. A maxAttempts of zero retries until ctx is done.
func NewApp(log *slog.Logger, interactor AppInteractor, retryDelay time.Duration, maxAttempts int) *App {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &App{log: log, interactor: interactor, retryDelay: retryDelay, maxAttempts: maxAttempts}
}

// EstablishSession keeps an existing identity, otherwise it signs in anonymously,
// retrying after a fixed delay on failure.
func (a *App) EstablishSession(ctx context.Context) (account.Identity, error) {
	if identity := a.interactor.CurrentIdentity(); identity != nil {
		a.interactor.TrackEvent(event.New("AppView_ExistingAuth", event.Analytic).With("user_id", identity.ID))
		return *identity, nil
	}

	for attempt := 1; ; attempt++ {
		a.interactor.TrackEvent(event.New("AppView_AnonAuth_Start", event.Analytic).With("attempt", attempt))
		identity, isNew, err := a.interactor.SignInAnonymous(ctx)
		if err == nil {
			a.interactor.TrackEvent(event.New("AppView_AnonAuth_Success", event.Analytic).
				With("user_id", identity.ID).
				With("is_new_user", isNew))
			return identity, nil
		}

		a.interactor.TrackEvent(event.Fail("AppView_AnonAuth_Fail", err).With("attempt", attempt))
		a.log.Warn("Anonymous sign-in failed", "attempt", attempt, "error", err)
		if a.maxAttempts > 0 && attempt >= a.maxAttempts {
			return account.Identity{}, err
		}

		select {
		case <-ctx.Done():
			return account.Identity{}, ctx.Err()
		case <-time.After(a.retryDelay):
		}
	}
}
