// CAPTCHA test server
package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kyiku/shape-captcha-go/internal/captcha"
	"github.com/kyiku/shape-captcha-go/internal/handler"
	"github.com/kyiku/shape-captcha-go/internal/i18n"
	"github.com/kyiku/shape-captcha-go/internal/render"
	"github.com/kyiku/shape-captcha-go/internal/shape"
	"github.com/kyiku/shape-captcha-go/internal/store"
)

// Runs the challenge engine standalone with an in-memory store and inline
// image delivery. No AWS credentials needed.
func main() {
	registry := shape.Default()
	renderer := render.New(registry, render.DefaultOptions())

	catalog, err := i18n.Load()
	if err != nil {
		log.Fatal("Failed to load locales:", err)
	}

	memStore := store.NewMemoryStore()
	service := captcha.NewService(registry, renderer, memStore, catalog, nil, captcha.DefaultOptions())

	captchaHandler := handler.NewCaptchaHandler(service)

	// Setup Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	// Static files
	e.Static("/", "mock-frontend")

	// CAPTCHA routes
	e.POST("/api/captcha/generate", captchaHandler.Generate)
	e.POST("/api/captcha/verify", captchaHandler.Verify)

	// Debug endpoint: issue a challenge and reveal its answer
	e.POST("/api/debug/challenge", func(c echo.Context) error {
		ch, err := service.Create(c.Request().Context(), "en")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":   true,
				"message": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"challenge_id": ch.ID,
			"prompt":       ch.Prompt,
			"target_type":  ch.TargetType,
		})
	})

	// Debug endpoint: list registered shape families
	e.GET("/api/debug/shapes", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"shapes": registry.TypeNames(),
		})
	})

	log.Println("Starting CAPTCHA test server on :8080")
	log.Println("Open http://localhost:8080/captcha-test.html")
	log.Fatal(e.Start(":8080"))
}
