package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Mrsumitborade/safe-earth-response/internal/logging"
	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
)

var (
	ErrEmptyMessage    = errors.New("message must not be empty")
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrUpstream wraps every failure of the completion call itself.
	ErrUpstream = errors.New("assistant unavailable")
)

// Completer produces the assistant's next reply for a transcript.
type Completer interface {
	Complete(ctx context.Context, apiKey string, msgs []Message) (string, error)
}

// Session is one assistant conversation. Sends on a session are serialized;
// reads of the transcript do not wait for an in-flight completion.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	sendMu     sync.Mutex
	mu         sync.Mutex
	transcript []Message
	completer  Completer
	creds      CredentialProvider
	fallback   bool

	lastActive atomic.Int64
}

func (s *Session) touch(t time.Time) {
	s.lastActive.Store(t.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Visible returns the transcript without system entries.
func (s *Session) Visible() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return visible(s.transcript)
}

func visible(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// Send appends text as a user message and asks for a reply. A missing
// credential or empty text leaves the transcript untouched. On completion
// failure the user message stays, the fallback reply is appended when
// enabled, and a rejected credential is cleared.
func (s *Session) Send(ctx context.Context, text string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	key, err := s.creds.Credential(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		metrics.ChatRequests.WithLabelValues("no_credential").Inc()
		return nil, ErrCredentialRequired
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: text})
	msgs := append([]Message(nil), s.transcript...)
	s.mu.Unlock()

	reply, err := s.completer.Complete(ctx, key, msgs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		metrics.ChatRequests.WithLabelValues("error").Inc()
		logger := logging.FromContext(ctx)
		logger.Warn("chat completion failed", "session", s.ID, "error", err)

		if IsAuthError(err) {
			if rerr := s.creds.Reset(ctx); rerr != nil {
				logger.Error("reset credential", "error", rerr)
			}
		}
		if s.fallback {
			s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: FallbackReply})
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	metrics.ChatRequests.WithLabelValues("ok").Inc()
	msg := Message{Role: RoleAssistant, Content: reply}
	s.transcript = append(s.transcript, msg)
	return &msg, nil
}

type ManagerConfig struct {
	// Fallback appends a canned assistant reply when a completion fails.
	Fallback bool
	// IdleTTL evicts sessions not used for this long. Zero keeps them forever.
	IdleTTL time.Duration
	// MaxSessions caps live sessions; the least recently used one is evicted
	// to make room. Zero means no cap.
	MaxSessions int
}

// Manager owns live sessions in memory. Idle and excess sessions are evicted
// when new ones are created.
type Manager struct {
	completer Completer
	creds     CredentialProvider
	cfg       ManagerConfig
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(completer Completer, creds CredentialProvider, cfg ManagerConfig) *Manager {
	return &Manager{
		completer: completer,
		creds:     creds,
		cfg:       cfg,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

func (m *Manager) Credentials() CredentialProvider {
	return m.creds
}

func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now.UTC(),
		transcript: initialTranscript(),
		completer:  m.completer,
		creds:      m.creds,
		fallback:   m.cfg.Fallback,
	}
	s.touch(now)

	m.mu.Lock()
	m.evictLocked(now)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Debug("chat session created", "session", s.ID)
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s, now) {
		delete(m.sessions, id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.touch(now)
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.cfg.IdleTTL > 0 && now.Sub(s.idleSince()) >= m.cfg.IdleTTL
}

// evictLocked drops expired sessions and, at the cap, the least recently
// used ones so that one more fits.
func (m *Manager) evictLocked(now time.Time) {
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			slog.Debug("chat session expired", "session", id)
		}
	}
	if m.cfg.MaxSessions <= 0 {
		return
	}
	for len(m.sessions) >= m.cfg.MaxSessions {
		var oldest *Session
		for _, s := range m.sessions {
			if oldest == nil || s.idleSince().Before(oldest.idleSince()) {
				oldest = s
			}
		}
		delete(m.sessions, oldest.ID)
		slog.Debug("chat session evicted", "session", oldest.ID)
	}
}
