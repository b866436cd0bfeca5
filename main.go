package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"snippetapp/auth"
	"snippetapp/config"
	"snippetapp/db"
	"snippetapp/handlers"
	"snippetapp/i18n"
)

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := i18n.LoadTranslations("i18n"); err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	auth.InitStore()

	db.InitDB(config.AppConfig.DatabasePath)
	defer db.DB.Close()

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(handlers.SecurityHeadersMiddleware)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	handlers.RegisterHandlers(r)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	log.Printf("Server starting on %s (%s)", addr, config.AppConfig.AppName)

	// CSRF protection over all form routes, keyed from the session key.
	csrfMiddleware := csrf.Protect(
		[]byte(config.AppConfig.SessionKey),
		csrf.Secure(config.AppConfig.ListenPort != 8080),
		csrf.Path("/"),
	)

	if err := http.ListenAndServe(addr, csrfMiddleware(r)); err != nil {
		log.Fatal(err)
	}
}
