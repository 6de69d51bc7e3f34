package main

import (
	"os"

	"cimsel/internal/db"
	"cimsel/internal/middleware"
	"cimsel/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, reading env vars from system")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db.Init()

	r := gin.Default()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("cimsel_session", store))

	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("cimsel server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal(err)
	}
}
