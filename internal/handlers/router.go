package handlers

import (
	"net/http"

	"recipe-share-backend/internal/middleware"
	"recipe-share-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds everything the router serves
type Deps struct {
	Verifier   middleware.Verifier
	Recipes    *services.RecipeService
	Assets     *services.AssetStore
	Favorites  *services.FavoriteService
	Comments   *services.CommentService
	Users      *services.UserService
	Contact    *services.ContactService
	Uploads    services.BlobStore
	Profiles   services.BlobStore
	Registry   *prometheus.Registry
	CORSOrigin string
	MaxUpload  int64
	// AccessLog enables chi's request logger
	AccessLog bool
}

// NewRouter wires every route of the API
func NewRouter(d Deps) http.Handler {
	recipeHandler := NewRecipeHandler(d.Recipes, d.Assets, d.MaxUpload)
	favoriteHandler := NewFavoriteHandler(d.Favorites)
	commentHandler := NewCommentHandler(d.Comments)
	userHandler := NewUserHandler(d.Users, d.Recipes, d.MaxUpload)
	contactHandler := NewContactHandler(d.Contact)
	requireAuth := middleware.AuthMiddleware(d.Verifier)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if d.AccessLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(d.CORSOrigin))
	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler)
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeHandler.ListRecipes)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/favorites", favoriteHandler.ListFavorites)
				r.Post("/favorites/{id}", favoriteHandler.AddFavorite)
				r.Delete("/favorites/{id}", favoriteHandler.RemoveFavorite)

				r.Post("/", recipeHandler.CreateRecipe)
				r.Get("/{id}", recipeHandler.GetRecipe)
				r.Put("/{id}", recipeHandler.UpdateRecipe)
				r.Delete("/{id}", recipeHandler.DeleteRecipe)

				r.Post("/{id}/images", recipeHandler.AddImages)
				r.Put("/{id}/images/{name}", recipeHandler.ReplaceImage)
				r.Delete("/{id}/images/{name}", recipeHandler.DeleteImage)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Get("/logout", userHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", userHandler.Me)
				r.Get("/my-recipes", userHandler.MyRecipes)
				r.Put("/update-profile", userHandler.UpdateProfile)
				r.Put("/change-password", userHandler.ChangePassword)
				r.Delete("/delete-account", userHandler.DeleteAccount)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{id}", commentHandler.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}", commentHandler.CreateComment)
				r.Put("/{id}", commentHandler.UpdateComment)
				r.Delete("/{id}", commentHandler.DeleteComment)
			})
		})

		r.Post("/contact", contactHandler.SendMessage)
	})

	r.Get("/uploads/{name}", serveBlobs(d.Uploads))
	r.Get("/profile_pics/{name}", serveBlobs(d.Profiles))

	return r
}
