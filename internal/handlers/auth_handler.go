package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wellscan/patient-portal/internal/config"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/middleware"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
	"github.com/wellscan/patient-portal/internal/validators"
)

const tokenTTL = 24 * time.Hour

var (
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	hasLowerRe = regexp.MustCompile(`[a-z]`)
	hasUpperRe = regexp.MustCompile(`[A-Z]`)
	hasDigitRe = regexp.MustCompile(`\d`)
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !nameRe.MatchString(req.Name) {
		httperr.BadRequest(c, "invalid_name", "Name can only contain letters and spaces")
		return
	}
	if !phoneRe.MatchString(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Please provide a valid phone number")
		return
	}
	if !hasLowerRe.MatchString(req.Password) || !hasUpperRe.MatchString(req.Password) || !hasDigitRe.MatchString(req.Password) {
		httperr.BadRequest(c, "weak_password",
			"Password must contain at least one uppercase letter, one lowercase letter, and one number")
		return
	}

	dob, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, timezone.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date_of_birth", "Please provide a valid date of birth")
		return
	}
	if !dob.Before(timezone.Now()) {
		httperr.BadRequest(c, "invalid_date_of_birth", "Date of birth must be in the past")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid")
		return
	}

	var count int64
	h.db.Model(&models.Patient{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "An account with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process registration")
		return
	}

	patient := models.Patient{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		DateOfBirth:  dob,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_already_registered", "An account with this email already exists")
			return
		}
		zap.L().Error("failed to create patient", zap.Error(err))
		httperr.Internal(c, "failed_to_create_patient", "Could not process registration")
		return
	}

	token, err := h.generateToken(&patient)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not process registration")
		return
	}

	h.setAuthCookies(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"patient": patient,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var patient models.Patient
	if err := h.db.Where("email = ?", email).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
			return
		}
		zap.L().Error("login lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not process login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.generateToken(&patient)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not process login")
		return
	}

	h.setAuthCookies(c, token)
	c.JSON(http.StatusOK, gin.H{
		"patient": patient,
		"token":   token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", h.config.IsProduction(), true)
	c.SetCookie("authToken", "", -1, "/", "", h.config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	var patient models.Patient
	if err := h.db.First(&patient, patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// --------- JWT / cookies ---------

func (h *AuthHandler) generateToken(patient *models.Patient) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": patient.ID,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// The web client reads either cookie; both are set so the extractor chain's
// fallbacks stay warm.
func (h *AuthHandler) setAuthCookies(c *gin.Context, token string) {
	maxAge := int(tokenTTL.Seconds())
	secure := h.config.IsProduction()
	c.SetCookie("token", token, maxAge, "/", "", secure, true)
	c.SetCookie("authToken", token, maxAge, "/", "", secure, true)
}
