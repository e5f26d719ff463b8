package session

import (
	"strconv"
	"sync"

	"getpetback/models"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Persisted keys. All of them are written and cleared together; the
// presence of KeyAuthToken is the sole authentication signal.
const (
	KeyAuthToken = "authToken"
	KeyUserEmail = "userEmail"
	KeyUserName  = "userName"
	KeyUserPhone = "userPhone"
	KeyUserID    = "userId"
)

var persistedKeys = []string{KeyAuthToken, KeyUserEmail, KeyUserName, KeyUserPhone, KeyUserID}

// Subscriber receives a snapshot of the session after every change.
type Subscriber func(models.Session)

// Store is the single source of truth for "who is using the app right
// now", durable across process restarts. All consumers read snapshots;
// only the store itself mutates the session.
type Store struct {
	db *sqlx.DB

	mu      sync.Mutex
	current models.Session
	subs    map[int]Subscriber
	nextSub int
}

// NewStore creates a session store over the state database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:   db,
		subs: make(map[int]Subscriber),
	}
}

// Restore loads the persisted session. A persisted token yields an
// authenticated session; profile fields without a token are stale and
// are purged rather than trusted. Must run before any gated command.
func (s *Store) Restore() (models.Session, error) {
	values, err := s.readAll()
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		Token: values[KeyAuthToken],
		Email: values[KeyUserEmail],
		Name:  values[KeyUserName],
		Phone: values[KeyUserPhone],
	}
	if raw := values[KeyUserID]; raw != "" {
		if id, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			sess.ID = &id
		}
	}

	if !sess.Authenticated() {
		// Stale profile without a token: purge, restore as guest.
		if sess.Email != "" || sess.Name != "" || sess.Phone != "" || sess.ID != nil {
			logger.Info("Purging stale profile state without token")
			if err := s.clearAll(); err != nil {
				return models.Session{}, err
			}
		}
		sess = models.Session{}
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if sess.Authenticated() {
		logger.Info("Session restored", zap.String("email", sess.Email))
	}
	return sess, nil
}

// Login persists the token and profile and publishes the authenticated
// session. An empty token is a defensive no-op: it is logged and
// nothing is persisted, so a misbehaving login flow can never produce
// a half-authenticated state.
func (s *Store) Login(profile models.Profile, token string) error {
	if token == "" {
		logger.Error("Login called with empty token, ignoring", zap.String("email", profile.Email))
		return nil
	}

	values := map[string]string{
		KeyAuthToken: token,
		KeyUserEmail: profile.Email,
		KeyUserName:  profile.Name,
		KeyUserPhone: profile.Phone,
		KeyUserID:    idString(profile.ID),
	}
	if err := s.writeAll(values); err != nil {
		return err
	}

	sess := models.Session{
		Token: token,
		Email: profile.Email,
		Name:  profile.Name,
		Phone: profile.Phone,
		ID:    profile.ID,
	}
	s.setCurrent(sess)
	logger.Info("Session established", zap.String("email", profile.Email))
	return nil
}

// Logout clears all persisted state and publishes the guest session.
// Idempotent: logging out twice is fine.
func (s *Store) Logout() error {
	if err := s.clearAll(); err != nil {
		return err
	}
	s.setCurrent(models.Session{})
	return nil
}

// UpdateProfile merges the provided fields into the current session and
// persists them. It never talks to the network; callers sync with the
// API first and only call this on success.
func (s *Store) UpdateProfile(update models.ProfileUpdate) error {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if update.Email != nil {
		sess.Email = *update.Email
	}
	if update.Name != nil {
		sess.Name = *update.Name
	}
	if update.Phone != nil {
		sess.Phone = *update.Phone
	}
	if update.ID != nil {
		id := *update.ID
		sess.ID = &id
	}

	values := map[string]string{
		KeyUserEmail: sess.Email,
		KeyUserName:  sess.Name,
		KeyUserPhone: sess.Phone,
		KeyUserID:    idString(sess.ID),
	}
	if err := s.writeAll(values); err != nil {
		return err
	}

	s.setCurrent(sess)
	return nil
}

// Current returns a snapshot of the session.
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer token, or "" for guests.
// Implements the API client's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}

// Invalidate destroys the session in response to an authorization
// failure from the API. Implements the API client's TokenSource.
func (s *Store) Invalidate() {
	if err := s.Logout(); err != nil {
		logger.Error("Failed to purge session state", zap.Error(err))
	}
}

// Subscribe registers fn to receive session snapshots on every change.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) setCurrent(sess models.Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

func (s *Store) readAll() (map[string]string, error) {
	rows, err := s.db.Queryx("SELECT key, value FROM session_state")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string, len(persistedKeys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// writeAll upserts the given keys in a single transaction so a partial
// write (token without profile, or vice versa) is never observable.
func (s *Store) writeAll(values map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for key, value := range values {
		if _, err := tx.Exec(
			"INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) "+
				"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
			key, value,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) clearAll() error {
	_, err := s.db.Exec("DELETE FROM session_state")
	return err
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
