package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/services"
)

type UserHandler struct {
	log           *logger.Logger
	userService   services.UserService
	uploadService services.UploadService
}

func NewUserHandler(log *logger.Logger, userService services.UserService, uploadService services.UploadService) *UserHandler {
	handlerLog := log.With("handler", "UserHandler")
	return &UserHandler{
		log:           handlerLog,
		userService:   userService,
		uploadService: uploadService,
	}
}

func (uh *UserHandler) GetUsers(c *gin.Context) {
	users, err := uh.userService.GetUsers(c.Request.Context())
	if err != nil {
		RespondError(c, uh.log, err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

// Signup accepts multipart form data with an optional image attachment.
// A missing image gets a generated initials avatar instead.
func (uh *UserHandler) Signup(c *gin.Context) {
	input := services.SignupInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	var asset *services.StoredAsset
	if fileHeader, err := c.FormFile("image"); err == nil {
		admitted, aErr := uh.uploadService.Admit(c.Request.Context(), fileHeader)
		if aErr != nil {
			RespondError(c, uh.log, aErr)
			return
		}
		asset = admitted
	}

	user, token, err := uh.userService.Signup(c.Request.Context(), input, asset)
	if err != nil {
		if asset != nil {
			uh.uploadService.Remove(c.Request.Context(), asset.Key)
		}
		RespondError(c, uh.log, err)
		return
	}
	RespondCreated(c, gin.H{"userId": user.ID, "email": user.Email, "token": token})
}

func (uh *UserHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, uh.log, domainagg.NewError(domainagg.CodeValidation, "user.login", "invalid inputs, please check your data", err))
		return
	}
	user, token, err := uh.userService.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		RespondError(c, uh.log, err)
		return
	}
	RespondOK(c, gin.H{"userId": user.ID, "email": user.Email, "token": token})
}
