package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/pdmitriev/recipebook-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type userHandler struct {
	presenter
	responder        Responder
	logger           zerolog.Logger
	validate         *validator.Validate
	userRepo         *database.UserRepo
	recipeRepo       *database.RecipeRepo
	subscriptionRepo *database.SubscriptionRepo
	tokens           *services.TokenService
}

func newUserHandler(p presenter, userRepo *database.UserRepo, recipeRepo *database.RecipeRepo, subscriptionRepo *database.SubscriptionRepo, tokens *services.TokenService) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		presenter:        p,
		responder:        NewResponder(logger),
		logger:           logger,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
		subscriptionRepo: subscriptionRepo,
		tokens:           tokens,
	}
}

type registerPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// checkPayload runs the struct tags and keys the first failure by its field
func (h userHandler) checkPayload(payload any) error {
	if err := h.validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return errs.NewValidationError(first.Field(), "failed on rule "+first.Tag())
		}
		return errs.Malformed("payload")
	}
	return nil
}

// register creates a new account
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
			h.responder.WriteError(w, errs.Malformed("register payload"))
			return
		}
		if err := h.checkPayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password", err))
			return
		}

		user := models.User{
			Email:        payload.Email,
			Username:     payload.Username,
			FirstName:    payload.FirstName,
			LastName:     payload.LastName,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "user", err))
			return
		}

		view, err := h.userView(&user, &user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// login verifies credentials and issues a bearer token
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}
		if err := h.checkPayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(payload.Email)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token", err))
			return
		}
		h.responder.WriteJSON(w, map[string]string{"auth_token": token})
	}
}

// me returns the authenticated caller's own profile
func (h userHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		view, err := h.userView(viewer, viewer)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// getUser returns a user's public profile from the viewer's perspective
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "user", err))
			return
		}

		view, err := h.userView(viewerFrom(r.Context()), user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// subscriptionView projects one followed author for the viewer: profile, the
// pair-specific flag, a recipe page sliced by limit, and the full count.
func (h userHandler) subscriptionView(viewer *models.User, author *models.User, recipeLimit int) (SubscriptionView, error) {
	subscribed, err := h.subscriptionRepo.Exists(viewer.ID, author.ID)
	if err != nil {
		return SubscriptionView{}, errs.FromDatabase("probe", "subscription", err)
	}

	recipes, err := h.recipeRepo.FindByAuthor(author.ID, recipeLimit)
	if err != nil {
		return SubscriptionView{}, errs.FromDatabase("find", "recipes", err)
	}
	shortViews := make([]ShortRecipeView, 0, len(recipes))
	for i := range recipes {
		shortViews = append(shortViews, shortRecipeView(&recipes[i]))
	}

	count, err := h.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return SubscriptionView{}, errs.FromDatabase("count", "recipes", err)
	}

	return SubscriptionView{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: subscribed,
		Recipes:      shortViews,
		RecipeCount:  count,
	}, nil
}

// listSubscriptions lists every author the caller follows, each with a
// recipe page limited by ?recipe_limit=N (all recipes when omitted)
func (h userHandler) listSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		recipeLimit := 0
		if raw := r.URL.Query().Get("recipe_limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid recipe_limit"))
				return
			}
			recipeLimit = limit
		}

		subscriptions, err := h.subscriptionRepo.FindByUser(viewer.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "subscriptions", err))
			return
		}

		views := make([]SubscriptionView, 0, len(subscriptions))
		for i := range subscriptions {
			view, err := h.subscriptionView(viewer, &subscriptions[i].Author, recipeLimit)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			views = append(views, view)
		}
		h.responder.WriteJSON(w, views)
	}
}

// subscribe follows an author's feed
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		authorID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		author, err := h.userRepo.FindByID(authorID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "user", err))
			return
		}

		// Rejected before storage is touched, whatever the prior state
		if viewer.ID == author.ID {
			h.responder.WriteError(w, errs.NewValidationError("author", "cannot subscribe to yourself"))
			return
		}

		if err := h.subscriptionRepo.Add(viewer.ID, author.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "subscription", err))
			return
		}

		view, err := h.subscriptionView(viewer, author, 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// unsubscribe stops following an author
func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		authorID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		if _, err := h.userRepo.FindByID(authorID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "user", err))
			return
		}

		if err := h.subscriptionRepo.Remove(viewer.ID, authorID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", "subscription", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
