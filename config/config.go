package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
)

type Config struct {
	AppName       string `json:"app_name"`
	ListenIP      string `json:"listen_ip"`
	ListenPort    int    `json:"listen_port"`
	SessionKey    string `json:"session_key"`
	DatabasePath  string `json:"database_path"`
	SessionDir    string `json:"session_dir"`
	TemplatesDir  string `json:"templates_dir"`
	EnableCaptcha bool   `json:"enable_captcha"`
}

var AppConfig Config

func LoadConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	AppConfig = Config{}
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		return err
	}

	// Override with environment variable if present
	if envKey := os.Getenv("SNIPPETAPP_SESSION_KEY"); envKey != "" {
		AppConfig.SessionKey = envKey
	}

	if AppConfig.DatabasePath == "" {
		AppConfig.DatabasePath = "./snippetapp.db"
	}
	if AppConfig.SessionDir == "" {
		AppConfig.SessionDir = "./sessions"
	}
	if AppConfig.TemplatesDir == "" {
		AppConfig.TemplatesDir = "templates"
	}

	// If no key is provided or it's the placeholder, generate a secure random one
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		log.Println("WARNING: No session key configured. Generating a random key. Sessions will be invalidated on restart.")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			return err
		}
		AppConfig.SessionKey = hex.EncodeToString(randomKey)
	}

	return nil
}
