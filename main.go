package main

import (
	"libraryapp_backend/app"
	"libraryapp_backend/config"
	"libraryapp_backend/routes"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router
	routes.RegisterRoutes(r, application)

	port := application.Config.Port
	logrus.WithField("port", port).Info("listening")
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
