package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/dchest/captcha"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"snippetapp/auth"
	"snippetapp/config"
	"snippetapp/db"
	"snippetapp/i18n"
)

func RegisterHandlers(r chi.Router) {
	r.Get("/", HomeHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RedirectIfAuthenticated)
			r.Get("/register", RegisterFormHandler)
			r.Post("/register", RegisterHandler)
			r.Get("/login", LoginFormHandler)
			r.Post("/login", LoginHandler)
		})
		r.Get("/logout", LogoutHandler)
	})

	r.Route("/snippets", func(r chi.Router) {
		r.Get("/", ListSnippetsHandler)
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/create", CreateSnippetFormHandler)
			r.Post("/create", CreateSnippetHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/update", UpdateSnippetFormHandler)
				r.Post("/update", UpdateSnippetHandler)
				r.Get("/delete", DeleteSnippetFormHandler)
				r.Post("/delete", DeleteSnippetHandler)
			})
		})
	})

	if config.AppConfig.EnableCaptcha {
		r.Handle("/captcha/*", captcha.Server(captcha.StdWidth, captcha.StdHeight))
	}

	r.NotFound(NotFoundHandler)
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "index.html", nil)
}

func RegisterFormHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if config.AppConfig.EnableCaptcha {
		data["CaptchaID"] = captcha.New()
	}
	renderTemplate(w, r, "register.html", data)
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ip := getClientIP(r)
	if !registerLimiter.Allow(ip) {
		auth.SetFlash(w, r, "danger", i18n.T(lang, "TooManyAttempts"))
		http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
		return
	}

	if config.AppConfig.EnableCaptcha &&
		!captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution")) {
		registerLimiter.RecordFailure(ip)
		auth.SetFlash(w, r, "danger", i18n.T(lang, "InvalidCaptcha"))
		http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
		return
	}

	user, err := db.CreateUser(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		registerLimiter.RecordFailure(ip)
		auth.SetFlash(w, r, "danger", i18n.T(lang, flashKeyForError(err)))
		http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
		return
	}

	registerLimiter.Reset(ip)

	// Log the user in right after registration.
	auth.SetSession(w, r, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "login.html", nil)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ip := getClientIP(r)
	if !loginLimiter.Allow(ip) {
		auth.SetFlash(w, r, "danger", i18n.T(lang, "TooManyAttempts"))
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	user, err := db.AuthenticateUser(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		loginLimiter.RecordFailure(ip)
		auth.SetFlash(w, r, "danger", i18n.T(lang, flashKeyForError(err)))
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	loginLimiter.Reset(ip)
	auth.SetSession(w, r, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "PageNotFound")
}

// flashKeyForError maps store errors to translation keys. Anything not
// recognized is a real failure and gets the generic message.
func flashKeyForError(err error) string {
	switch err {
	case db.ErrUsernameTaken:
		return "UsernameAlreadyExists"
	case db.ErrUsernameTooShort:
		return "UsernameTooShort"
	case db.ErrPasswordTooShort:
		return "PasswordTooShort"
	case db.ErrInvalidCredentials:
		return "InvalidCredentials"
	case db.ErrDescriptionRequired:
		return "DescriptionRequired"
	case db.ErrSnippetNotFound:
		return "SnippetNotFound"
	default:
		log.Printf("Unexpected error: %v", err)
		return "InternalServerError"
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	renderStatus(w, r, http.StatusOK, name, data)
}

// renderError renders the shared error page with the given status. The
// message is looked up by key so the page never carries internal detail.
func renderError(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	lang := i18n.DetectLanguage(r)
	renderStatus(w, r, status, "error.html", map[string]any{
		"Status":  status,
		"Message": i18n.T(lang, messageKey),
	})
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles(
		config.AppConfig.TemplatesDir+"/layout.html",
		config.AppConfig.TemplatesDir+"/"+name,
	)
	if err != nil {
		log.Printf("Error parsing template %s: %v", name, err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	data["AppName"] = config.AppConfig.AppName
	data["Lang"] = lang
	data["csrfField"] = csrf.TemplateField(r)
	data["LoggedIn"] = auth.GetUserID(r) != 0
	if flash := auth.PopFlash(w, r); flash != nil {
		data["Flash"] = flash
	}

	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}
