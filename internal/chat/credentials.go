package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Mrsumitborade/safe-earth-response/internal/repository"
)

// CredentialKey is the settings key the persisted credential lives under.
const CredentialKey = "openai_api_key"

var (
	ErrCredentialRequired = errors.New("api credential required")
	ErrInvalidCredential  = errors.New("api credential must not be blank")
)

// CredentialProvider supplies the key sent with each completion request.
// Credential returns "" when none is set.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
	Reset(ctx context.Context) error
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidCredential
	}
	return key, nil
}

// SessionCredentials keeps the credential in process memory only.
type SessionCredentials struct {
	mu  sync.RWMutex
	key string
}

func NewSessionCredentials() *SessionCredentials {
	return &SessionCredentials{}
}

func (s *SessionCredentials) Credential(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, nil
}

func (s *SessionCredentials) Set(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	return nil
}

func (s *SessionCredentials) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.key = ""
	s.mu.Unlock()
	return nil
}

// PersistedCredentials stores the credential in the settings repository so
// it survives restarts.
type PersistedCredentials struct {
	settings repository.SettingsRepository
}

func NewPersistedCredentials(settings repository.SettingsRepository) *PersistedCredentials {
	return &PersistedCredentials{settings: settings}
}

func (p *PersistedCredentials) Credential(ctx context.Context) (string, error) {
	key, ok, err := p.settings.GetSetting(ctx, CredentialKey)
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		return "", nil
	}
	return key, nil
}

func (p *PersistedCredentials) Set(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if err := p.settings.PutSetting(ctx, CredentialKey, key); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

func (p *PersistedCredentials) Reset(ctx context.Context) error {
	if err := p.settings.DeleteSetting(ctx, CredentialKey); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
