package handlers

import (
	"PharmaCore/models"
	"PharmaCore/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubUserService struct {
	allUsers    []models.User
	usersByRole map[string][]models.User
	permissions []models.Permission
	lastRole    string
}

func (s *stubUserService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	return nil
}

func (s *stubUserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	return nil, nil
}

func (s *stubUserService) UpdateUserEmail(ctx context.Context, userID int64, newEmail string) error {
	return nil
}

func (s *stubUserService) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return nil
}

func (s *stubUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.allUsers, nil
}

func (s *stubUserService) GetStaffByRole(ctx context.Context, roleName string) ([]models.User, error) {
	s.lastRole = roleName
	return s.usersByRole[roleName], nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, Username: "jdoe", Role: models.Role{Name: "Pharmacist"}}, nil
}

func (s *stubUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (s *stubUserService) UpdateUserProfile(ctx context.Context, userID int64, username, email string) error {
	return nil
}

func (s *stubUserService) GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error) {
	return s.permissions, nil
}

func (s *stubUserService) DeleteUser(ctx context.Context, userID int64) error {
	return nil
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	token, err := utils.GenerateAccessToken("7", role)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func TestAdminManageUsersRoleFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubUserService{
		allUsers: []models.User{{ID: 1}, {ID: 2}, {ID: 3}},
		usersByRole: map[string][]models.User{
			"Pharmacist": {{ID: 2, Username: "jdoe"}},
		},
	}
	handler := NewAuthHandler(stub)
	router := gin.New()
	router.GET("/users", handler.AdminManageUsers)

	token := adminToken(t, "Admin")
	req := httptest.NewRequest(http.MethodGet, "/users?role=Pharmacist&accessToken="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.lastRole != "Pharmacist" {
		t.Errorf("role filter passed through as %q, want Pharmacist", stub.lastRole)
	}
	var body struct {
		Users []models.User `json:"users"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Total != 1 || len(body.Users) != 1 {
		t.Errorf("filtered listing returned %d users, want 1", body.Total)
	}
}

func TestAdminManageUsersRejectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubUserService{})
	router := gin.New()
	router.GET("/users", handler.AdminManageUsers)

	token := adminToken(t, "Receptionist")
	req := httptest.NewRequest(http.MethodGet, "/users?accessToken="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetUserProfileIncludesPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubUserService{
		permissions: []models.Permission{
			{ID: 4, Name: "dispense_prescriptions"},
			{ID: 5, Name: "manage_inventory"},
		},
	}
	handler := NewAuthHandler(stub)
	router := gin.New()
	router.GET("/auth/user/profile", handler.GetUserProfile)

	token := adminToken(t, "Pharmacist")
	req := httptest.NewRequest(http.MethodGet, "/auth/user/profile?accessToken="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Permissions []models.Permission `json:"permissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(body.Permissions) != 2 || body.Permissions[0].Name != "dispense_prescriptions" {
		t.Errorf("profile permissions = %+v, want the role's seeded set", body.Permissions)
	}
}
