package handler

import (
	"net/http"
	"time"

	"github.com/pbw78/Rentalmasters/internal/middleware"
	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/pkg/config"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/jwtutil"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var demoConfig config.DemoConfig

// InitAuthHandler stores the demo account configuration and makes sure
// the demo admin user exists
func InitAuthHandler(cfg *config.Config) error {
	demoConfig = cfg.Demo

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", demoConfig.Email).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoConfig.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := model.User{
		Email:     demoConfig.Email,
		Password:  string(hashed),
		FirstName: "Demo",
		LastName:  "Admin",
		Role:      model.RoleAdmin,
	}
	return database.GetDB().Create(&demo).Error
}

// Login authenticates a user by email and password and issues a JWT
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.ActiveTokensGauge.Inc()
	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// DemoLogin issues a token for the seeded demo admin account
func DemoLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var user model.User
	result := database.GetDB().Where("email = ?", demoConfig.Email).First(&user)
	if result.Error != nil {
		log.Error("Demo user not found", zap.String("email", demoConfig.Email))
		prometheus.RecordAuthError("demo_user_missing")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "demo account unavailable"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.ActiveTokensGauge.Inc()
	log.Info("Demo user logged in", zap.String("email", user.Email))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Register creates a new user account with the default role
func Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		log.Warn("Incomplete registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	// Check if user already exists
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		log.Warn("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleUser,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	prometheus.RecordEntityOperation("user", "create")
	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, user)
}

// Logout acknowledges a logout. Tokens are stateless, so the client is
// responsible for discarding the token.
func Logout(c echo.Context) error {
	logger.FromContext(c).Info("User logged out")
	prometheus.ActiveTokensGauge.Dec()
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// CurrentUser returns the authenticated user's record
func CurrentUser(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	var user model.User
	result := database.GetDB().First(&user, userID)
	if result.Error != nil {
		log.Warn("Authenticated user no longer exists", zap.Uint("user_id", userID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}
