package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/requestdata"
	"github.com/yungbote/places-backend/internal/services"
)

const minDescriptionLength = 5

type PlaceHandler struct {
	log           *logger.Logger
	placeService  services.PlaceService
	uploadService services.UploadService
}

func NewPlaceHandler(log *logger.Logger, placeService services.PlaceService, uploadService services.UploadService) *PlaceHandler {
	handlerLog := log.With("handler", "PlaceHandler")
	return &PlaceHandler{
		log:           handlerLog,
		placeService:  placeService,
		uploadService: uploadService,
	}
}

func (ph *PlaceHandler) GetPlaceByID(c *gin.Context) {
	placeID, err := parseID(c.Param("pid"), "place")
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	place, err := ph.placeService.GetPlace(c.Request.Context(), placeID)
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	RespondOK(c, gin.H{"place": place})
}

func (ph *PlaceHandler) GetPlacesByUserID(c *gin.Context) {
	userID, err := parseID(c.Param("uid"), "user")
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	places, err := ph.placeService.GetPlacesByUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	RespondOK(c, gin.H{"places": places})
}

// CreatePlace admits the attached image before touching the consistency
// engine; any later failure triggers the compensating asset delete.
func (ph *PlaceHandler) CreatePlace(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, ph.log, domainagg.NewError(domainagg.CodeUnauthorized, "place.create", "could not verify authentication", nil))
		return
	}
	input := services.CreatePlaceInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Address:     strings.TrimSpace(c.PostForm("address")),
	}
	if err := validatePlaceInput(input.Title, input.Description); err != nil {
		RespondError(c, ph.log, err)
		return
	}
	if input.Address == "" {
		RespondError(c, ph.log, invalidInputs("place.create"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, ph.log, domainagg.NewError(domainagg.CodeAdmission, "place.create", "an image file is required", err))
		return
	}
	asset, err := ph.uploadService.Admit(c.Request.Context(), fileHeader)
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}

	place, err := ph.placeService.CreatePlace(c.Request.Context(), rd.UserID, input, asset)
	if err != nil {
		ph.uploadService.Remove(c.Request.Context(), asset.Key)
		RespondError(c, ph.log, err)
		return
	}
	RespondCreated(c, gin.H{"place": place})
}

func (ph *PlaceHandler) UpdatePlace(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, ph.log, domainagg.NewError(domainagg.CodeUnauthorized, "place.update", "could not verify authentication", nil))
		return
	}
	placeID, err := parseID(c.Param("pid"), "place")
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, ph.log, invalidInputs("place.update"))
		return
	}
	title := strings.TrimSpace(body.Title)
	description := strings.TrimSpace(body.Description)
	if err := validatePlaceInput(title, description); err != nil {
		RespondError(c, ph.log, err)
		return
	}
	place, err := ph.placeService.UpdatePlace(c.Request.Context(), rd.UserID, placeID, title, description)
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	RespondOK(c, gin.H{"place": place})
}

func (ph *PlaceHandler) DeletePlace(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, ph.log, domainagg.NewError(domainagg.CodeUnauthorized, "place.delete", "could not verify authentication", nil))
		return
	}
	placeID, err := parseID(c.Param("pid"), "place")
	if err != nil {
		RespondError(c, ph.log, err)
		return
	}
	if err := ph.placeService.DeletePlace(c.Request.Context(), rd.UserID, placeID); err != nil {
		RespondError(c, ph.log, err)
		return
	}
	RespondOK(c, gin.H{"message": "Deleted place"})
}

func parseID(raw, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domainagg.NewError(domainagg.CodeValidation, "parse_id", "invalid "+kind+" id", err)
	}
	return id, nil
}

func validatePlaceInput(title, description string) error {
	if title == "" || len(description) < minDescriptionLength {
		return invalidInputs("place.validate")
	}
	return nil
}

func invalidInputs(op string) error {
	return domainagg.NewError(domainagg.CodeValidation, op, "invalid inputs, please check your data", nil)
}
