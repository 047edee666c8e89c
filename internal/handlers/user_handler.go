package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// Index lists admin users
func (h *UserHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	users, total, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]models.AdminUserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// Show retrieves an admin user
func (h *UserHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)
	user, err := h.userService.GetUser(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// Create registers an admin user
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := BindNestedOrFlat(c, "user", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username e password são obrigatórios"})
		return
	}

	user := models.AdminUser{
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   true,
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.userService.CreateUser(c.Request.Context(), &user, req.Password, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user.ToResponse()})
}

// Update edits an admin user; password changes only when supplied
func (h *UserHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)

	var req userRequest
	if err := BindNestedOrFlat(c, "user", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := models.AdminUser{
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   true,
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), uint(id), &updated, req.Password, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// Delete removes an admin user
func (h *UserHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err := h.userService.DeleteUser(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido"})
}
