package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"getpetback/api"
	"getpetback/models"
	"getpetback/notify"
	"getpetback/search"
	"getpetback/validate"
)

func (a *App) dispatch(command string, args []string) error {
	ctx := context.Background()

	switch command {
	case "home":
		return a.cmdHome(ctx)
	case "search":
		return a.cmdSearch(ctx, args)
	case "quicksearch":
		return a.cmdQuickSearch(args)
	case "pet":
		return a.cmdPet(ctx, args)
	case "add":
		return a.cmdAdd(ctx, args)
	case "edit":
		return a.cmdEdit(ctx, args)
	case "delete":
		return a.cmdDelete(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "profile":
		return a.cmdProfile(ctx)
	case "orders":
		return a.cmdOrders(ctx)
	case "set-phone":
		return a.cmdSetPhone(ctx, args)
	case "set-email":
		return a.cmdSetEmail(ctx, args)
	case "subscribe":
		return a.cmdSubscribe(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// cmdHome shows the landing-page content: reunited success stories and
// the latest listings.
func (a *App) cmdHome(ctx context.Context) error {
	slider, err := a.client.SliderPets(ctx)
	if err != nil {
		return err
	}
	recent, err := a.client.RecentPets(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Reunited with their owners:")
	for _, l := range slider {
		a.printListing(l)
	}
	fmt.Printf("\nRecent listings (%d):\n", len(recent))
	for _, l := range recent {
		a.printListing(l)
	}
	return nil
}

func (a *App) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	district := fs.String("district", "", "District filter")
	kind := fs.String("kind", "", "Animal kind filter")
	page := fs.Int("page", 1, "Result page (1-based)")
	fs.Parse(args)

	if *district == "" && *kind == "" {
		return fmt.Errorf("enter at least one search parameter (-district or -kind)")
	}
	if *district != "" && !models.ValidDistrict(*district) {
		return fmt.Errorf("unknown district: %s", *district)
	}

	result, err := a.searcher.Search(ctx, *district, *kind, *page)
	if err != nil {
		return err
	}

	if result.TotalItems == 0 {
		fmt.Println("Nothing found")
		return nil
	}
	fmt.Printf("Found %d listings, page %d of %d:\n", result.TotalItems, result.Number, result.TotalPages)
	for _, l := range result.Items {
		a.printListing(l)
	}
	return nil
}

// cmdQuickSearch runs the interactive live search: each line typed on
// stdin is the current query; suggestions appear after the idle delay.
func (a *App) cmdQuickSearch(args []string) error {
	fs := flag.NewFlagSet("quicksearch", flag.ExitOnError)
	fs.Parse(args)

	results := make(chan search.Result, 1)
	live := search.NewLive(a.client, a.cfg.Debounce(), a.cfg.Search.MinQueryLen,
		func(r search.Result) { results <- r })
	defer live.Close()

	go func() {
		for r := range results {
			if r.Err != nil {
				fmt.Fprintln(os.Stderr, "error:", api.Notice(r.Err))
				continue
			}
			if r.Query == "" {
				continue
			}
			if len(r.Listings) == 0 {
				fmt.Printf("No matches for %q\n", r.Query)
				continue
			}
			fmt.Printf("Suggestions for %q:\n", r.Query)
			for _, l := range r.Listings {
				fmt.Printf("  #%d %s — %s\n", l.ID, l.Kind, shortDescription(l.Description))
			}
		}
	}()

	fmt.Printf("Type a query (min %d characters), Ctrl-D to quit:\n", a.cfg.Search.MinQueryLen)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		live.Input(strings.TrimSpace(scanner.Text()))
	}
	return scanner.Err()
}

func (a *App) cmdPet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pet", flag.ExitOnError)
	id := fs.Int64("id", 0, "Listing id")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	listing, err := a.client.Pet(ctx, *id)
	if err != nil {
		return err
	}
	a.printListing(listing)
	if listing.Name != "" || listing.Phone != "" {
		fmt.Printf("    reporter: %s %s %s\n", listing.Name, listing.Phone, listing.Email)
	}
	return nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Your name")
	phone := fs.String("phone", "", "Contact phone")
	email := fs.String("email", "", "Contact email")
	kind := fs.String("kind", "", "Animal kind")
	district := fs.String("district", "", "District")
	mark := fs.String("mark", "", "Chip/brand mark (optional)")
	description := fs.String("description", "", "Description, 10-1000 characters")
	photo1 := fs.String("photo1", "", "Main photo (PNG)")
	photo2 := fs.String("photo2", "", "Extra photo (PNG)")
	photo3 := fs.String("photo3", "", "Extra photo (PNG)")
	register := fs.Bool("register", false, "Also create an account")
	password := fs.String("password", "", "Password when registering")
	agree := fs.Bool("agree", false, "Consent to personal data processing")
	fs.Parse(args)

	form := models.ListingForm{
		Name:        strings.TrimSpace(*name),
		Phone:       strings.TrimSpace(*phone),
		Email:       strings.TrimSpace(*email),
		Kind:        strings.TrimSpace(*kind),
		District:    *district,
		Mark:        strings.TrimSpace(*mark),
		Description: strings.TrimSpace(*description),
		Confirm:     *agree,
		Register:    *register,
		Password:    *password,
	}
	for _, p := range []string{*photo1, *photo2, *photo3} {
		if p != "" {
			form.Photos = append(form.Photos, p)
		}
	}

	// Contact fields fall back to the session when logged in.
	sess := a.sessions.Current()
	sessionFilled := false
	if sess.Authenticated() {
		if form.Name == "" {
			form.Name = sess.Name
			sessionFilled = true
		}
		if form.Phone == "" {
			form.Phone = sess.Phone
		}
		if form.Email == "" {
			form.Email = sess.Email
		}
	}

	if errs := validate.Listing(form, sessionFilled); !errs.OK() {
		return formError(errs)
	}

	if err := a.client.CreateListing(ctx, form); err != nil {
		return fieldAware(err)
	}
	a.success("Listing submitted")
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "Listing id")
	description := fs.String("description", "", "New description")
	mark := fs.String("mark", "", "New chip/brand mark")
	photo1 := fs.String("photo1", "", "Replacement photo (PNG)")
	photo2 := fs.String("photo2", "", "Replacement photo (PNG)")
	photo3 := fs.String("photo3", "", "Replacement photo (PNG)")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	edit := models.ListingEdit{
		Description: strings.TrimSpace(*description),
		Mark:        strings.TrimSpace(*mark),
	}
	for _, p := range []string{*photo1, *photo2, *photo3} {
		if p != "" {
			edit.Photos = append(edit.Photos, p)
		}
	}

	if errs := validate.ListingEdit(edit); !errs.OK() {
		return formError(errs)
	}

	if err := a.client.UpdateListing(ctx, *id, edit); err != nil {
		return fieldAware(err)
	}
	a.success("Listing updated")
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "Listing id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.client.DeleteListing(ctx, *id); err != nil {
		return err
	}
	a.success("Listing deleted")
	return nil
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Your name")
	phone := fs.String("phone", "", "Phone")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	agree := fs.Bool("agree", false, "Consent to personal data processing")
	fs.Parse(args)

	req := models.RegisterRequest{
		Name:                 strings.TrimSpace(*name),
		Phone:                strings.TrimSpace(*phone),
		Email:                strings.TrimSpace(*email),
		Password:             *password,
		PasswordConfirmation: *password,
	}
	if *agree {
		req.Confirm = 1
	}

	if errs := validate.Registration(req); !errs.OK() {
		return formError(errs)
	}

	if err := a.client.Register(ctx, req); err != nil {
		return fieldAware(err)
	}
	a.success("Registration successful, logging in...")

	// Log in with the same credentials right away, like the web flow.
	token, err := a.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		a.notifier.Push(notify.LevelWarning, "Registered, but automatic login failed; run -command login")
		fmt.Println("Registered. Please log in with -command login")
		return nil
	}
	profile := models.Profile{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := a.sessions.Login(profile, token); err != nil {
		return err
	}
	a.success("Logged in as " + req.Email)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	fs.Parse(args)

	if errs := validate.Login(strings.TrimSpace(*email), *password); !errs.OK() {
		return formError(errs)
	}

	token, err := a.client.Login(ctx, strings.TrimSpace(*email), *password)
	if err != nil {
		return err
	}

	profile := models.Profile{Email: strings.TrimSpace(*email)}
	profile.Name = strings.SplitN(profile.Email, "@", 2)[0]
	if err := a.sessions.Login(profile, token); err != nil {
		return err
	}

	// Best effort: enrich the profile from the API now that the token
	// is in place. Failure here does not undo the login.
	if me, err := a.client.Me(ctx); err == nil {
		update := models.ProfileUpdate{Name: &me.Name, Phone: &me.Phone}
		if me.ID != nil {
			update.ID = me.ID
		}
		if err := a.sessions.UpdateProfile(update); err != nil {
			return err
		}
	}

	a.success("Logged in as " + profile.Email)
	return nil
}

func (a *App) cmdLogout() error {
	if err := a.sessions.Logout(); err != nil {
		return err
	}
	a.success("Logged out")
	return nil
}

func (a *App) cmdProfile(ctx context.Context) error {
	sess, err := a.requireAuth()
	if err != nil {
		return err
	}

	// Refresh from the API; the store only updates on success.
	if me, err := a.client.Me(ctx); err == nil {
		update := models.ProfileUpdate{Name: &me.Name, Phone: &me.Phone, Email: &me.Email}
		if me.ID != nil {
			update.ID = me.ID
		}
		if err := a.sessions.UpdateProfile(update); err != nil {
			return err
		}
		sess = a.sessions.Current()
	} else if errors.Is(err, api.ErrSessionExpired) {
		return err
	}

	fmt.Println("Profile:")
	fmt.Println("  name: ", sess.Name)
	fmt.Println("  email:", sess.Email)
	fmt.Println("  phone:", sess.Phone)
	if sess.ID != nil {
		fmt.Println("  id:   ", *sess.ID)
	}
	return nil
}

func (a *App) cmdOrders(ctx context.Context) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("You have no listings yet")
		return nil
	}
	fmt.Printf("Your listings (%d):\n", len(orders))
	for _, l := range orders {
		a.printListing(l)
	}
	return nil
}

func (a *App) cmdSetPhone(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-phone", flag.ExitOnError)
	phone := fs.String("phone", "", "New phone")
	fs.Parse(args)

	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := validate.Phone(*phone); err != nil {
		return err
	}

	if err := a.client.UpdatePhone(ctx, strings.TrimSpace(*phone)); err != nil {
		return fieldAware(err)
	}
	trimmed := strings.TrimSpace(*phone)
	if err := a.sessions.UpdateProfile(models.ProfileUpdate{Phone: &trimmed}); err != nil {
		return err
	}
	a.success("Phone updated")
	return nil
}

func (a *App) cmdSetEmail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-email", flag.ExitOnError)
	email := fs.String("email", "", "New email")
	fs.Parse(args)

	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := validate.Email(*email); err != nil {
		return err
	}

	if err := a.client.UpdateEmail(ctx, strings.TrimSpace(*email)); err != nil {
		return fieldAware(err)
	}
	trimmed := strings.TrimSpace(*email)
	if err := a.sessions.UpdateProfile(models.ProfileUpdate{Email: &trimmed}); err != nil {
		return err
	}
	a.success("Email updated")
	return nil
}

func (a *App) cmdSubscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
	email := fs.String("email", "", "Email for the newsletter")
	fs.Parse(args)

	if err := validate.Email(*email); err != nil {
		return err
	}
	if err := a.client.SubscribeNewsletter(ctx, strings.TrimSpace(*email)); err != nil {
		return fieldAware(err)
	}
	a.success("Subscribed to the newsletter")
	return nil
}

// formError renders client-side field errors once per field. These
// never reach the network layer.
func formError(errs validate.FieldErrors) error {
	var b strings.Builder
	b.WriteString("form has errors:")
	for field, msg := range errs {
		b.WriteString("\n  " + field + ": " + msg)
	}
	return fmt.Errorf("%s", b.String())
}

// fieldAware expands a server 422 into per-field lines; the server's
// verdict overrides whatever the client accepted.
func fieldAware(err error) error {
	if verr, ok := err.(*api.ValidationError); ok && len(verr.Fields) > 0 {
		var b strings.Builder
		b.WriteString(verr.Message)
		for field, msg := range verr.Fields {
			b.WriteString("\n  " + field + ": " + msg)
		}
		return fmt.Errorf("%s", b.String())
	}
	return err
}

func shortDescription(description string) string {
	if description == "" {
		return "no description"
	}
	runes := []rune(description)
	if len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return description
}
