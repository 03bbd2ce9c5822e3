package auth

import (
	"avatar-chat/domain/account"
	"avatar-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Verifier checks a credential issued by an external sign-in provider
// and returns the subject it was issued for.
type Verifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// JWTVerifier accepts HS256 tokens whose issuer is the provider name.
type JWTVerifier struct {
	signer *Signer
}

func NewJWTVerifier(provider, secret string) *JWTVerifier {
	return &JWTVerifier{signer: NewSigner(secret, provider, 0)}
}

func (v *JWTVerifier) Verify(_ context.Context, credential string) (string, error) {
	claims, err := v.signer.Parse(credential)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", errors.ErrInvalidCredential)
	}
	return claims.Subject, nil
}

// LocalProvider signs users in without a remote backend.
// Anonymous users get a random id, federated users keep the subject of
// their verified credential. Sessions are signed JWTs.
type LocalProvider struct {
	mu        sync.Mutex
	log       *slog.Logger
	signer    *Signer
	verifiers map[string]Verifier
	known     map[string]struct{}
	current   *account.Identity
	watchers  map[chan *account.Identity]struct{}
	now       func() time.Time
}

func NewLocalProvider(log *slog.Logger, signer *Signer) *LocalProvider {
	return &LocalProvider{
		log:       log,
		signer:    signer,
		verifiers: make(map[string]Verifier),
		known:     make(map[string]struct{}),
		watchers:  make(map[chan *account.Identity]struct{}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithVerifier enables federated sign-in for provider.
func (p *LocalProvider) WithVerifier(provider string, v Verifier) *LocalProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifiers[provider] = v
	return p
}

func (p *LocalProvider) CurrentIdentity() *account.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	identity := *p.current
	return &identity
}

// SignInAnonymous keeps an existing anonymous session, otherwise it creates one.
func (p *LocalProvider) SignInAnonymous(_ context.Context) (account.Identity, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.IsAnonymous {
		return *p.current, false, nil
	}
	identity, err := p.issue(uuid.NewString(), account.ProviderAnonymous, true)
	if err != nil {
		return account.Identity{}, false, err
	}
	p.known[key(identity.Provider, identity.ID)] = struct{}{}
	p.signIn(&identity)
	p.log.Info("Signed in anonymously", "user_id", identity.ID)
	return identity, true, nil
}

func (p *LocalProvider) SignInFederated(ctx context.Context, provider, credential string) (account.Identity, bool, error) {
	p.mu.Lock()
	verifier, ok := p.verifiers[provider]
	p.mu.Unlock()
	if !ok {
		return account.Identity{}, false, fmt.Errorf("%w: %s", errors.ErrUnsupportedProvider, provider)
	}
	if err := ValidateSignIn(SignInRequest{Provider: provider, Credential: credential}); err != nil {
		return account.Identity{}, false, err
	}
	subject, err := verifier.Verify(ctx, credential)
	if err != nil {
		p.log.Warn("Federated credential rejected", "provider", provider, "error", err)
		return account.Identity{}, false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	identity, err := p.issue(subject, provider, false)
	if err != nil {
		return account.Identity{}, false, err
	}
	k := key(provider, subject)
	_, seen := p.known[k]
	p.known[k] = struct{}{}
	p.signIn(&identity)
	p.log.Info("Signed in", "user_id", identity.ID, "provider", provider, "is_new", !seen)
	return identity, !seen, nil
}

func (p *LocalProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	p.log.Info("Signed out", "user_id", p.current.ID)
	p.signIn(nil)
	return nil
}

// DeleteAccount forgets the signed-in identity, a later sign-in with the
// same provider subject is reported as a new user.
func (p *LocalProvider) DeleteAccount(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return errors.ErrAuthRequired
	}
	delete(p.known, key(p.current.Provider, p.current.ID))
	p.log.Info("Account deleted", "user_id", p.current.ID)
	p.signIn(nil)
	return nil
}

// WatchIdentity emits the current identity right away, then every change.
// A slow reader only sees the latest identity. The channel is closed when ctx is done.
func (p *LocalProvider) WatchIdentity(ctx context.Context) <-chan *account.Identity {
	ch := make(chan *account.Identity, 1)
	p.mu.Lock()
	p.watchers[ch] = struct{}{}
	ch <- clone(p.current)
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.watchers, ch)
		close(ch)
		p.mu.Unlock()
	}()
	return ch
}

// issue runs with the lock held.
func (p *LocalProvider) issue(userID, provider string, anonymous bool) (account.Identity, error) {
	token, err := p.signer.Sign(userID, provider, anonymous)
	if err != nil {
		return account.Identity{}, fmt.Errorf("signing session: %w", err)
	}
	return account.Identity{
		ID:          userID,
		IsAnonymous: anonymous,
		Provider:    provider,
		Token:       token,
		CreatedAt:   p.now(),
	}, nil
}

// signIn runs with the lock held.
func (p *LocalProvider) signIn(identity *account.Identity) {
	if identity == nil {
		p.current = nil
	} else {
		p.current = clone(identity)
	}
	for ch := range p.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- clone(p.current)
	}
}

func clone(identity *account.Identity) *account.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}

func key(provider, subject string) string {
	return provider + ":" + subject
}
