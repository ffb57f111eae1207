package controllers

import (
	"context"
	"log"
	"os"

	"pms/dto"
	"pms/errors"
	"pms/models"
	"pms/response"
	"pms/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

const tokenExpiryMinutes = 60 * 24

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
		Role:   user.Role,
	}
}

// RegisterUser creates a collaborator account.
func RegisterUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	user, err := services.CreateUser(models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, toUserResponse(user))
}

// Login authenticates with email and password and issues a JWT.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	user, err := services.GetUserByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c)
		return
	}
	if !services.CheckPassword(user.Password, req.Password) {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role, tokenExpiryMinutes)
	if err != nil {
		log.Printf("error generating token: %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// AuthGoogle authenticates with a Google ID token, registering the user
// on first sign-in.
func AuthGoogle(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	payload, err := verifyGoogleIDToken(req.IDToken)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	googleUser := dto.GoogleUser{}
	if v, ok := payload.Claims["name"].(string); ok {
		googleUser.Name = v
	}
	if v, ok := payload.Claims["email"].(string); ok {
		googleUser.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		googleUser.VerifiedEmail = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		googleUser.Picture = v
	}
	if googleUser.Email == "" || !googleUser.VerifiedEmail {
		response.Unauthorized(c)
		return
	}

	user, err := services.GetUserByEmail(googleUser.Email)
	if err != nil {
		appErr := errors.GetAppError(err)
		if appErr == nil || appErr.Code != errors.ErrCodeUserNotFound {
			handleServiceError(c, err)
			return
		}
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			handleServiceError(c, err)
			return
		}
	}

	token, err := services.GenerateToken(user.ID, user.Role, tokenExpiryMinutes)
	if err != nil {
		log.Printf("error generating token: %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

func verifyGoogleIDToken(tokenID string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenID, clientID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
