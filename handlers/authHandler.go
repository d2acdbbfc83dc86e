package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/models"
	"PharmaCore/services"
	"PharmaCore/utils"
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

// allRoles lists every role a valid token may carry.
var allRoles = []string{"Admin", "Pharmacist", "Physician", "Receptionist"}

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Helper function to extract token from URL query parameters
func extractAccessToken(c *gin.Context) (string, error) {
	token := c.DefaultQuery("accessToken", "")
	if token == "" {
		return "", fmt.Errorf("access token is required")
	}
	return token, nil
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.ValidateAndCreateUser(ctx, &user); err != nil {
		middlewares.HttpError(c, fmt.Sprintf("Validation failed: %v", err), 400, err)
		return
	}

	createdUser, err := h.UserService.GetUserByUsername(ctx, user.Username)
	if err != nil || createdUser == nil {
		middlewares.HttpError(c, "Failed to retrieve user after creation", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"user": createdUser}, 201)
}

// Login authenticates the user and returns tokens along with user info
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		middlewares.HttpError(c, "Invalid username or password", 401, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		middlewares.HttpError(c, "Failed to generate tokens", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, 200)
}

// RefreshToken refreshes the user's access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}

	claims, err := utils.ValidateToken(token, allRoles...)
	if err != nil {
		middlewares.HttpError(c, "Invalid access token", 401, err)
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		middlewares.HttpError(c, "Failed to generate access token", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"accessToken": accessToken}, 200)
}

// Logoff logs the user out by clearing cookies
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	middlewares.RespondJSON(c, gin.H{"message": "Logged off"}, 200)
}

// DeleteAccount removes the user's account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid user ID", 400, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		middlewares.HttpError(c, "Failed to delete user account", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"message": "Account deleted"}, 200)
}

// SendResetCode sends a password reset code to the user's email
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil || user == nil {
		middlewares.HttpError(c, "User not found", 404, err)
		return
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, user.Email, code); err != nil {
		middlewares.HttpError(c, "Failed to set reset code", 500, err)
		return
	}

	if err := utils.SendResetCodeEmail(user.Email, code); err != nil {
		middlewares.HttpError(c, "Failed to send reset code email", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"message": "Reset code sent"}, 200)
}

// ChangeEmail updates the user's email
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}

	claims, err := utils.ValidateToken(token, allRoles...)
	if err != nil {
		middlewares.HttpError(c, "Invalid access token", 401, err)
		return
	}

	var data struct {
		CurrentPassword string `json:"current_password"`
		NewEmail        string `json:"new_email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	ctx := c.Request.Context()
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid user ID", 500, err)
		return
	}

	if err := h.UserService.UpdateUserEmail(ctx, userID, data.NewEmail); err != nil {
		middlewares.HttpError(c, "Failed to change email", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"message": "Email updated"}, 200)
}

// GetUserProfile retrieves the current user's profile
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}

	claims, err := utils.ValidateToken(token, allRoles...)
	if err != nil {
		middlewares.HttpError(c, "Invalid access token", 401, err)
		return
	}

	ctx := c.Request.Context()
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid user ID", 500, err)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		middlewares.HttpError(c, "User not found", 404, err)
		return
	}

	// The profile carries the role's permission set so the client can decide
	// which pharmacy screens (dispensing, inventory, billing) to enable.
	permissions, err := h.UserService.GetUserPermissions(ctx, userID)
	if err != nil {
		middlewares.HttpError(c, "Failed to resolve permissions", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"user": user, "permissions": permissions}, 200)
}

// UpdateUserProfile updates the user's profile information
func (h *AuthHandler) UpdateUserProfile(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}

	claims, err := utils.ValidateToken(token, allRoles...)
	if err != nil {
		middlewares.HttpError(c, "Invalid access token", 401, err)
		return
	}

	ctx := c.Request.Context()
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid user ID", 500, err)
		return
	}

	var updateData struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	if err := h.UserService.UpdateUserProfile(ctx, userID, updateData.Username, updateData.Email); err != nil {
		middlewares.HttpError(c, "Failed to update profile", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"message": "Profile updated"}, 200)
}

// ChangePassword updates the user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}

	ctx := c.Request.Context()
	storedCode, err := utils.GetResetCode(ctx, data.Email)
	if err != nil || storedCode == nil || *storedCode != data.Code {
		middlewares.HttpError(c, "Invalid reset code", 401, err)
		return
	}

	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil || user == nil {
		middlewares.HttpError(c, "User not found", 404, err)
		return
	}

	hashedPassword, err := utils.HashPassword(data.NewPassword)
	if err != nil {
		middlewares.HttpError(c, "Failed to hash password", 500, err)
		return
	}

	if err := h.UserService.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		middlewares.HttpError(c, "Failed to update password", 500, err)
		return
	}

	utils.DeleteResetCode(ctx, data.Email)
	middlewares.RespondJSON(c, gin.H{"message": "Password updated"}, 200)
}

// AdminManageUsers allows an admin to list accounts, optionally filtered to
// one staff role (?role=Pharmacist for a dispensedBy picker).
func (h *AuthHandler) AdminManageUsers(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}

	claims, err := utils.ValidateToken(token, "Admin")
	if err != nil {
		middlewares.HttpError(c, "Invalid access token", 401, err)
		return
	}

	ctx := c.Request.Context()

	// Audit log
	log.Printf("Admin claims: %+v", claims)

	var users []models.User
	if role := c.Query("role"); role != "" {
		users, err = h.UserService.GetStaffByRole(ctx, role)
	} else {
		users, err = h.UserService.GetAllUsers(ctx)
	}
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve users", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{"users": users, "total": len(users)}, 200)
}

// DecryptRequest represents the expected JSON request body
type DecryptRequest struct {
	Token string `json:"token" binding:"required"`
}

// DecryptHandler decrypts a PASETO token and returns the extracted claims
func (h *AuthHandler) DecryptHandler(c *gin.Context) {
	var req DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request payload", 400, err)
		return
	}

	claims, err := utils.ValidateToken(req.Token)
	if err != nil {
		middlewares.HttpError(c, "Invalid or expired token", 401, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{
		"userId": claims.UserID,
		"role":   claims.Role,
		"expiry": claims.Expiry,
	}, 200)
}
