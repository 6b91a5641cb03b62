package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AhanafShahriar/forms-app-frontend/internal/config"
	"github.com/AhanafShahriar/forms-app-frontend/internal/logger"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/api"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/auth"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/renderers/html"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/renderers/tui"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/sessions"
	"github.com/rs/zerolog"
)

type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     *auth.Store
	client    *api.Client
	uploader  *api.Uploader
	renderers *render.Registry
	driver    tui.PromptDriver
	collector *tui.AnswerRenderer
	editor    *tui.QuestionEditor
	nav       sessions.Navigator
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	a, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	store, err := auth.NewStore(cfg.SessionFile, auth.WithStoreLogger(log))
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		return nil, err
	}

	client, err := api.New(cfg.APIBaseURL, api.WithTokenSource(store), api.WithLogger(log))
	if err != nil {
		return nil, err
	}

	var uploader *api.Uploader
	if cfg.UploadURL != "" {
		uploader, err = api.NewUploader(cfg.UploadURL, cfg.UploadPreset, api.WithUploadLogger(log))
		if err != nil {
			return nil, err
		}
	}

	driver, err := tui.NewSurveyDriver()
	if err != nil {
		return nil, err
	}
	collector, err := tui.NewAnswerRenderer()
	if err != nil {
		return nil, err
	}
	editor, err := tui.NewQuestionEditor()
	if err != nil {
		return nil, err
	}
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(collector)

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		client:    client,
		uploader:  uploader,
		renderers: registry,
		driver:    driver,
		collector: collector,
		editor:    editor,
		nav: sessions.NavigatorFunc(func(route string) {
			fmt.Println("open", route)
		}),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "home":
		return a.home(ctx)
	case "search":
		return a.search(ctx, args)
	case "templates":
		return a.listTemplates(ctx)
	case "my-templates":
		return a.myTemplates(ctx)
	case "my-forms":
		return a.myForms(ctx)
	case "template":
		return a.showTemplate(ctx, args)
	case "create":
		return a.createTemplate(ctx, args)
	case "edit":
		return a.editTemplate(ctx, args)
	case "delete":
		return a.deleteTemplate(ctx, args)
	case "fill":
		return a.fillForm(ctx, args)
	case "form":
		return a.showForm(ctx, args)
	case "edit-form":
		return a.editForm(ctx, args)
	case "delete-form":
		return a.deleteForm(ctx, args)
	case "forms":
		return a.listForms(ctx, args)
	case "comments":
		return a.watchComments(ctx, args)
	case "comment":
		return a.postComment(ctx, args)
	case "users":
		return a.adminUsers(ctx)
	case "block":
		return a.blockUser(ctx, args)
	case "delete-user":
		return a.deleteUser(ctx, args)
	case "prefs":
		return a.updatePrefs(ctx, args)
	case "ticket":
		return a.createTicket(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: formsapp <command> [flags]

account
  login         authenticate and cache the session
  register      create an account and sign in
  logout        drop the cached session
  whoami        show the signed-in user
  prefs         update language and theme preferences

browse
  home          latest and popular templates plus the tag cloud
  search        full-text template search
  templates     list all visible templates
  template      show one template (use -renderer html for a page)
  my-templates  templates you authored
  my-forms      forms you submitted

author
  create        build a new template interactively
  edit          edit an existing template
  delete        delete a template

fill
  fill          answer a template's questions and submit
  form          show a submitted form
  edit-form     change answers on a submitted form
  delete-form   delete a submitted form
  forms         list submissions for a template

discuss
  comments      follow a template's comment feed
  comment       post a comment

admin
  users         list accounts
  block         block an account
  delete-user   delete an account

support
  ticket        file a support ticket
`)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.promptCredentials(ctx, email, password); err != nil {
		return err
	}

	creds, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Login(creds.Token, creds.User); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", creds.User.Name)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		v, err := a.driver.Input(ctx, tui.InputConfig{Message: "Name:"})
		if err != nil {
			return err
		}
		*name = v
	}
	if err := a.promptCredentials(ctx, email, password); err != nil {
		return err
	}

	if err := a.client.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	creds, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Login(creds.Token, creds.User); err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", creds.User.Name)
	return nil
}

func (a *app) promptCredentials(ctx context.Context, email, password *string) error {
	if *email == "" {
		v, err := a.driver.Input(ctx, tui.InputConfig{Message: "Email:"})
		if err != nil {
			return err
		}
		*email = v
	}
	if *password == "" {
		v, err := a.driver.Password(ctx, tui.InputConfig{Message: "Password:"})
		if err != nil {
			return err
		}
		*password = v
	}
	return nil
}

func (a *app) logout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *app) whoami() error {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if user.IsAdmin() {
		fmt.Println("role: admin")
	}
	if user.Language != "" {
		fmt.Println("language:", user.Language)
	}
	if user.Theme != "" {
		fmt.Println("theme:", user.Theme)
	}
	return nil
}

func (a *app) home(ctx context.Context) error {
	latest, err := a.client.LatestTemplates(ctx)
	if err != nil {
		return err
	}
	popular, err := a.client.PopularTemplates(ctx)
	if err != nil {
		return err
	}
	tags, err := a.client.Tags(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Latest templates")
	printTemplates(latest)
	fmt.Println("\nMost filled")
	printTemplates(popular)
	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.Name)
		}
		fmt.Println("\nTags:", strings.Join(names, ", "))
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp search <query>")
	}
	results, err := a.client.SearchTemplates(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no templates matched")
		return nil
	}
	printTemplates(results)
	return nil
}

func (a *app) listTemplates(ctx context.Context) error {
	templates, err := a.client.Templates(ctx)
	if err != nil {
		return err
	}
	printTemplates(templates)
	return nil
}

func (a *app) myTemplates(ctx context.Context) error {
	templates, err := a.client.MyTemplates(ctx)
	if err != nil {
		return err
	}
	printTemplates(templates)
	return nil
}

func (a *app) myForms(ctx context.Context) error {
	forms, err := a.client.MyForms(ctx)
	if err != nil {
		return err
	}
	printForms(forms)
	return nil
}

func (a *app) showTemplate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	renderer := fs.String("renderer", a.cfg.Renderer, "renderer to use")
	output := fs.String("output", "", "output file (stdout if empty)")
	lang := fs.String("lang", "", "UI language override")
	variant := fs.String("variant", "", "theme variant override")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return errors.New("usage: formsapp template [flags] <id>")
	}

	tpl, err := a.client.Template(ctx, id)
	if err != nil {
		return err
	}
	return a.render(ctx, *renderer, *output, render.View{Template: tpl}, *lang, *variant)
}

func (a *app) createTemplate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "template title")
	description := fs.String("description", "", "template description")
	topic := fs.String("topic", "", "topic (Education, Quiz, Other)")
	tags := fs.String("tags", "", "comma separated tag names")
	public := fs.Bool("public", true, "visible to every signed-in user")
	users := fs.String("users", "", "comma separated user ids allowed when not public")
	image := fs.String("image", "", "path to an illustration image to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ts := sessions.NewTemplateSession(a.client, a.store, a.nav, sessions.WithTemplateLogger(a.log))
	if err := ts.Load(ctx, ""); err != nil {
		return err
	}
	return a.submitTemplate(ctx, ts, *title, *description, *topic, *tags, *public, *users, *image)
}

func (a *app) editTemplate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	title := fs.String("title", "", "new title (keeps current if empty)")
	description := fs.String("description", "", "new description")
	topic := fs.String("topic", "", "new topic")
	tags := fs.String("tags", "", "replacement tag list")
	public := fs.Bool("public", true, "visible to every signed-in user")
	users := fs.String("users", "", "comma separated user ids allowed when not public")
	image := fs.String("image", "", "path to a replacement illustration image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return errors.New("usage: formsapp edit [flags] <id>")
	}

	ts := sessions.NewTemplateSession(a.client, a.store, a.nav, sessions.WithTemplateLogger(a.log))
	if err := ts.Load(ctx, id); err != nil {
		return err
	}
	return a.submitTemplate(ctx, ts, *title, *description, *topic, *tags, *public, *users, *image)
}

func (a *app) submitTemplate(ctx context.Context, ts *sessions.TemplateSession, title, description, topic, tags string, public bool, users, image string) error {
	if title != "" {
		ts.Draft.Title = title
	}
	if description != "" {
		ts.Draft.Description = description
	}
	if topic != "" {
		ts.Draft.Topic = topic
	}
	if tags != "" {
		ts.Draft.Tags = splitList(tags)
	}
	ts.SetVisibility(public, splitList(users))

	if image != "" {
		if a.uploader == nil {
			return errors.New("image upload is not configured; set FORMSAPP_UPLOAD_URL")
		}
		f, err := os.Open(image)
		if err != nil {
			return err
		}
		url, err := a.uploader.Upload(ctx, image, f)
		f.Close()
		if err != nil {
			return err
		}
		ts.Draft.ImageURL = url
	}

	if err := a.editor.Run(ctx, &ts.Draft.Questions); err != nil {
		return err
	}

	if err := ts.Submit(ctx); err != nil {
		if errors.Is(err, sessions.ErrIncomplete) {
			printErrors(ts.Errors())
		}
		return err
	}
	fmt.Println("template saved")
	return nil
}

func (a *app) deleteTemplate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp delete <id>")
	}
	ts := sessions.NewTemplateSession(a.client, a.store, a.nav, sessions.WithTemplateLogger(a.log))
	if err := ts.Load(ctx, args[0]); err != nil {
		return err
	}
	ok, err := a.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Delete this template and all its forms?"})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := ts.Delete(ctx); err != nil {
		return err
	}
	fmt.Println("template deleted")
	return nil
}

func (a *app) formSession() *sessions.FormSession {
	return sessions.NewFormSession(a.client, a.store, a.nav, a.collector, sessions.WithFormLogger(a.log))
}

func (a *app) fillForm(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp fill <template-id>")
	}
	id, err := a.formSession().Fill(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println("form submitted:", id)
	return nil
}

func (a *app) showForm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("form", flag.ExitOnError)
	renderer := fs.String("renderer", a.cfg.Renderer, "renderer to use")
	output := fs.String("output", "", "output file (stdout if empty)")
	lang := fs.String("lang", "", "UI language override")
	variant := fs.String("variant", "", "theme variant override")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return errors.New("usage: formsapp form [flags] <id>")
	}

	view, err := a.formSession().View(ctx, id)
	if err != nil {
		return err
	}
	return a.render(ctx, *renderer, *output, view, *lang, *variant)
}

func (a *app) editForm(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp edit-form <id>")
	}
	if err := a.formSession().Edit(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("form updated")
	return nil
}

func (a *app) deleteForm(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp delete-form <id>")
	}
	ok, err := a.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Delete this form?"})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := a.formSession().Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("form deleted")
	return nil
}

func (a *app) listForms(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp forms <template-id>")
	}
	forms, err := a.formSession().ListByTemplate(ctx, args[0])
	if err != nil {
		return err
	}
	printForms(forms)
	return nil
}

func (a *app) watchComments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp comments <template-id>")
	}
	feed := sessions.NewCommentFeed(a.client,
		sessions.WithPollInterval(a.cfg.CommentPollInterval()),
		sessions.WithCommentLogger(a.log))

	fmt.Println("watching comments; press Ctrl-C to stop")
	err := feed.Run(ctx, args[0], printComments)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) postComment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	text := fs.String("text", "", "comment text (prompted if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return errors.New("usage: formsapp comment [flags] <template-id>")
	}
	if *text == "" {
		v, err := a.driver.TextArea(ctx, tui.TextAreaConfig{Message: "Comment:"})
		if err != nil {
			return err
		}
		*text = v
	}

	feed := sessions.NewCommentFeed(a.client, sessions.WithCommentLogger(a.log))
	thread, err := feed.Post(ctx, id, *text)
	if err != nil {
		return err
	}
	printComments(thread)
	return nil
}

func (a *app) adminUsers(ctx context.Context) error {
	users, err := a.client.AdminUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		state := ""
		if u.Blocked {
			state = " [blocked]"
		}
		if u.IsAdmin() {
			state += " [admin]"
		}
		fmt.Printf("%-8s %s <%s>%s\n", u.ID, u.Name, u.Email, state)
	}
	return nil
}

func (a *app) blockUser(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp block <user-id>")
	}
	if err := a.client.BlockUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("user blocked")
	return nil
}

func (a *app) deleteUser(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: formsapp delete-user <user-id>")
	}
	ok, err := a.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Delete this account and everything it owns?"})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := a.client.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("user deleted")
	return nil
}

func (a *app) updatePrefs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	language := fs.String("language", "", "ENGLISH, SPANISH or RUSSIAN")
	theme := fs.String("theme", "", "LIGHT or DARK")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *language == "" && *theme == "" {
		return errors.New("usage: formsapp prefs -language <L> and/or -theme <T>")
	}

	user := a.store.CurrentUser()
	if user == nil {
		return auth.ErrNotAuthenticated
	}
	lang := user.Language
	if *language != "" {
		lang = strings.ToUpper(*language)
	}
	if lang == "" {
		lang = model.LanguageEnglish
	}
	th := user.Theme
	if *theme != "" {
		th = strings.ToUpper(*theme)
	}
	if th == "" {
		th = model.ThemeLight
	}

	if err := a.store.UpdatePreferences(ctx, a.client, lang, th); err != nil {
		return err
	}
	fmt.Printf("preferences saved: %s, %s\n", lang, th)
	return nil
}

func (a *app) createTicket(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ticket", flag.ExitOnError)
	summary := fs.String("summary", "", "short problem description")
	priority := fs.String("priority", string(api.PriorityAverage), "High, Average or Low")
	page := fs.String("page", "", "app route where the problem occurred")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *summary == "" {
		v, err := a.driver.Input(ctx, tui.InputConfig{Message: "Summary:"})
		if err != nil {
			return err
		}
		*summary = v
	}

	ticket := api.Ticket{
		Summary:  *summary,
		Priority: api.TicketPriority(*priority),
		PageURL:  *page,
	}
	if err := a.client.CreateTicket(ctx, ticket); err != nil {
		return err
	}
	fmt.Println("ticket filed")
	return nil
}

// render resolves the requested renderer, fills in the signed-in user's
// language and theme preferences unless overridden, and writes the result.
func (a *app) render(ctx context.Context, name, output string, view render.View, lang, variant string) error {
	renderer, err := a.renderers.Get(name)
	if err != nil {
		return err
	}

	opts := render.Options{Translator: render.DefaultCatalog()}
	if user := a.store.CurrentUser(); user != nil {
		opts.Locale = user.Language
		opts.Variant = user.Theme
	}
	if lang != "" {
		opts.Locale = strings.ToUpper(lang)
	}
	if variant != "" {
		opts.Variant = strings.ToUpper(variant)
	}

	out, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return err
	}
	if output != "" {
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("written to %s\n", output)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printTemplates(templates []model.Template) {
	if len(templates) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, t := range templates {
		author := t.CreatorID
		if t.Author != nil {
			author = t.Author.Name
		}
		visibility := "public"
		if !t.Public {
			visibility = "restricted"
		}
		fmt.Printf("  %-8s %-40s %-10s %s", t.ID, t.Title, t.Topic, visibility)
		if t.FilledCount > 0 {
			fmt.Printf("  filled %d times", t.FilledCount)
		}
		if author != "" {
			fmt.Printf("  by %s", author)
		}
		fmt.Println()
	}
}

func printForms(forms []model.FilledForm) {
	if len(forms) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, f := range forms {
		owner := ""
		if f.User != nil {
			owner = f.User.Name
		}
		title := f.TemplateID
		if f.Template != nil && f.Template.Title != "" {
			title = f.Template.Title
		}
		fmt.Printf("  %-8s %-40s", f.ID, title)
		if owner != "" {
			fmt.Printf("  by %s", owner)
		}
		if !f.CreatedAt.IsZero() {
			fmt.Printf("  %s", f.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
}

func printComments(comments []model.Comment) {
	for _, c := range comments {
		stamp := ""
		if !c.CreatedAt.IsZero() {
			stamp = c.CreatedAt.Format("15:04")
		}
		fmt.Printf("[%s] %s: %s\n", stamp, c.Author, c.Content)
	}
	fmt.Println("---")
}

func printErrors(errs map[string][]string) {
	for _, msg := range errs[""] {
		fmt.Fprintln(os.Stderr, msg)
	}
	for field, msgs := range errs {
		if field == "" {
			continue
		}
		for _, msg := range msgs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
	}
}
