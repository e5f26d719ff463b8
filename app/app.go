package app

import (
	"fmt"
	"os"

	cachepackage "getpetback/cache"
	"getpetback/config"
	"getpetback/database"
	"getpetback/api"
	"getpetback/models"
	"getpetback/notify"
	"getpetback/search"
	"getpetback/session"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// App bundles the wired-up client services a command runs against.
type App struct {
	cfg      config.Config
	sessions *session.Store
	client   *api.Client
	searcher *search.Searcher
	notifier *notify.Notifier
}

// Run initializes the client and dispatches one command. Startup
// failures terminate the process; command failures print a notice and
// return a non-zero exit code.
func Run(command string, args []string) int {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	cfgPath := os.Getenv("PETBACK_CONFIG")
	if cfgPath == "" {
		cfgPath = "./petback.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		os.Exit(1)
	}

	// Initialize local state
	dbConn := database.InitializeStateDB(cfg.State)
	defer dbConn.Close()

	// Initialize optional search cache
	searchCache := cachepackage.InitializeCache(cfg.Cache)
	if searchCache != nil {
		defer searchCache.Close()
	}

	sessions := session.NewStore(dbConn)
	client := api.New(cfg.API, sessions)

	app := &App{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		searcher: search.NewSearcher(client, searchCache, cfg.Search.PageSize),
		notifier: notify.New(),
	}

	// The session must be known before any route-guarded command runs.
	if _, err := sessions.Restore(); err != nil {
		logger.Error("Failed to restore session", zap.Error(err))
		os.Exit(1)
	}

	if err := app.dispatch(command, args); err != nil {
		app.fail(err)
		return 1
	}
	return 0
}

// fail routes an error through the notice taxonomy and prints it.
func (a *App) fail(err error) {
	msg := api.Notice(err)
	a.notifier.Push(notify.LevelDanger, msg)
	fmt.Fprintln(os.Stderr, "error:", msg)
}

func (a *App) success(msg string) {
	a.notifier.Push(notify.LevelSuccess, msg)
	fmt.Println(msg)
}

// requireAuth gates commands that need an authenticated session.
func (a *App) requireAuth() (models.Session, error) {
	sess := a.sessions.Current()
	if !sess.Authenticated() {
		return sess, fmt.Errorf("you are not logged in; run -command login first")
	}
	return sess, nil
}

func (a *App) printListing(l models.Listing) {
	fmt.Printf("#%d  %s — %s\n", l.ID, l.Kind, l.District)
	if l.Date != "" {
		fmt.Printf("    date: %s\n", l.Date)
	}
	if l.Mark != "" {
		fmt.Printf("    mark: %s\n", l.Mark)
	}
	if l.Status != "" {
		editable := ""
		if l.Editable() {
			editable = " (editable)"
		}
		fmt.Printf("    status: %s%s\n", l.Status, editable)
	}
	if l.Description != "" {
		fmt.Printf("    %s\n", l.Description)
	}
	for _, photo := range l.Photos {
		fmt.Printf("    photo: %s\n", a.client.NormalizeImageURL(photo))
	}
}
