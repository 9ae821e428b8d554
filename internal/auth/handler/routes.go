package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/auth")
	auth.Get("/signin", h.SignIn)
	auth.Get("/signin-callback", h.SignInCallback)
	auth.Post("/signup", h.SignUp)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", RequireAuth(h.tokens), h.Logout)
	auth.Get("/me", RequireAuth(h.tokens), h.Me)
}
