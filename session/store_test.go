package session

import (
	"os"
	"testing"

	"getpetback/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE session_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	return db
}

func TestLoginThenRestore(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	id := int64(42)
	profile := models.Profile{
		Email: "user@mail.ru",
		Name:  "Анна",
		Phone: "+7 (921) 123-45-67",
		ID:    &id,
	}
	require.NoError(t, store.Login(profile, "tok-abc"))

	// Simulate a reload: a fresh store over the same database.
	reloaded := NewStore(db)
	sess, err := reloaded.Restore()
	require.NoError(t, err)

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, profile.Email, sess.Email)
	assert.Equal(t, profile.Name, sess.Name)
	assert.Equal(t, profile.Phone, sess.Phone)
	require.NotNil(t, sess.ID)
	assert.Equal(t, id, *sess.ID)
}

func TestLoginEmptyTokenPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	err := store.Login(models.Profile{Email: "user@mail.ru"}, "")
	require.NoError(t, err)

	assert.False(t, store.Current().Authenticated())

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM session_state"))
	assert.Zero(t, count)
}

func TestLogoutIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.Login(models.Profile{Email: "user@mail.ru"}, "tok"))
	require.NoError(t, store.Logout())
	assert.False(t, store.Current().Authenticated())

	require.NoError(t, store.Logout())
	assert.False(t, store.Current().Authenticated())
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.Login(models.Profile{
		Email: "user@mail.ru",
		Name:  "Анна",
		Phone: "+79210000000",
	}, "tok"))

	newPhone := "+79998887766"
	require.NoError(t, store.UpdateProfile(models.ProfileUpdate{Phone: &newPhone}))

	reloaded := NewStore(db)
	sess, err := reloaded.Restore()
	require.NoError(t, err)

	assert.Equal(t, newPhone, sess.Phone)
	assert.Equal(t, "user@mail.ru", sess.Email)
	assert.Equal(t, "Анна", sess.Name)
	assert.Equal(t, "tok", sess.Token)
}

func TestRestorePurgesProfileWithoutToken(t *testing.T) {
	db := newTestDB(t)

	// Stale state: profile fields persisted with no token.
	_, err := db.Exec("INSERT INTO session_state (key, value) VALUES (?, ?)", KeyUserEmail, "ghost@mail.ru")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO session_state (key, value) VALUES (?, ?)", KeyUserName, "Призрак")
	require.NoError(t, err)

	store := NewStore(db)
	sess, err := store.Restore()
	require.NoError(t, err)

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Email)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM session_state"))
	assert.Zero(t, count, "stale profile rows must be purged")
}

func TestInvalidatePurgesSession(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.Login(models.Profile{Email: "user@mail.ru"}, "tok"))

	// What the API client does on a 401, whatever the prior state.
	store.Invalidate()

	assert.False(t, store.Current().Authenticated())
	assert.Empty(t, store.Token())

	reloaded := NewStore(db)
	sess, err := reloaded.Restore()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestSubscribersSeeSnapshots(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	var got []models.Session
	unsubscribe := store.Subscribe(func(s models.Session) {
		got = append(got, s)
	})

	require.NoError(t, store.Login(models.Profile{Email: "user@mail.ru"}, "tok"))
	require.NoError(t, store.Logout())

	require.Len(t, got, 2)
	assert.True(t, got[0].Authenticated())
	assert.False(t, got[1].Authenticated())

	unsubscribe()
	require.NoError(t, store.Login(models.Profile{Email: "user@mail.ru"}, "tok"))
	assert.Len(t, got, 2, "unsubscribed listener must not fire")
}
