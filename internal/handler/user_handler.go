package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/service"
	u "github.com/avoronkov/minibank/internal/utils"
)

type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid create user request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	user := &models.User{
		Login: req.Login,
		Email: req.Email,
	}

	if err := h.userService.Create(r.Context(), user); err != nil {
		h.handleServiceError(w, err, "create user")
		return
	}

	u.WriteJSON(w, http.StatusCreated, userResponse(user))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	u.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid update user request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	user := &models.User{
		ID:    userID,
		Login: req.Login,
		Email: req.Email,
	}

	if err := h.userService.Update(r.Context(), user); err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}

	u.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if err := h.userService.DeleteByID(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	u.WriteJSON(w, http.StatusNoContent, nil)
}

func userResponse(user *models.User) models.UserResponse {
	return models.UserResponse{
		ID:    user.ID,
		Login: user.Login,
		Email: user.Email,
	}
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case apperrors.IsNotFound(err):
		u.WriteError(w, http.StatusNotFound, "not found", err.Error())
	case apperrors.IsValidation(err):
		u.WriteError(w, http.StatusBadRequest, "validation error", err.Error())
	default:
		h.logger.Error("internal server error during "+operation, "error", err.Error())
		u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
