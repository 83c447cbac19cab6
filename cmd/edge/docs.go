package main

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// mountDocs Swagger UI en /docs. Sin archivo no monta nada (swagger.New entra en pánico si falta).
func mountDocs(app *fiber.App, file, title string, log zerolog.Logger) bool {
	if file == "" {
		return false
	}
	if _, err := os.Stat(file); err != nil {
		log.Warn().Err(err).Str("file", file).Msg("swagger no disponible")
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: file,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
