package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/sessions"

	"snippetapp/config"
)

// Store keeps session state server-side, in files under the configured
// session directory. The cookie carries only the opaque session ID, so
// destroying a session on logout removes the state itself, not just the
// client's reference to it.
var Store *sessions.FilesystemStore

const SessionName = "snippetapp-session"

// Flash is a one-shot notice shown on the next rendered page.
// Type is one of "success", "danger" or "info".
type Flash struct {
	Type string
	Text string
}

func init() {
	// Session values are gob-encoded by the filesystem store.
	gob.Register(Flash{})
}

func InitStore() {
	if err := os.MkdirAll(config.AppConfig.SessionDir, 0o700); err != nil {
		log.Fatalf("Error creating session directory: %v", err)
	}

	// Derive two 32-byte keys from the session key
	// Auth key for signing (HMAC)
	authKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "auth"))
	// Encryption key for cookie content encryption (AES)
	encKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "encryption"))

	Store = sessions.NewFilesystemStore(config.AppConfig.SessionDir, authKey[:], encKey[:])

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

// GetUserID returns the authenticated user's ID, or 0 for an anonymous
// session.
func GetUserID(r *http.Request) int {
	session, _ := Store.Get(r, SessionName)
	if id, ok := session.Values["userID"].(int); ok {
		return id
	}
	return 0
}

func SetSession(w http.ResponseWriter, r *http.Request, userID int) {
	session, _ := Store.Get(r, SessionName)
	session.Values["userID"] = userID
	session.Save(r, w)
}

// ClearSession invalidates the session entirely: the server-side session
// file is removed and the cookie is expired.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

func SetFlash(w http.ResponseWriter, r *http.Request, kind, text string) {
	session, _ := Store.Get(r, SessionName)
	session.AddFlash(Flash{Type: kind, Text: text})
	session.Save(r, w)
}

// PopFlash returns the pending notice, if any, and clears it. A notice is
// shown exactly once.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	session, _ := Store.Get(r, SessionName)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	session.Save(r, w)
	if f, ok := flashes[0].(Flash); ok {
		return &f
	}
	return nil
}
