// controllers/property_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/middleware"
	"stayafrika-backend/models"
	"stayafrika-backend/services"
	"stayafrika-backend/utils"
)

const maxPropertyImages = 10

// ---------------------------
// Controller
// ---------------------------

type PropertyController struct {
	Properties *services.PropertyService
	Reviews    *services.ReviewService
}

func NewPropertyController(properties *services.PropertyService, reviews *services.ReviewService) *PropertyController {
	return &PropertyController{Properties: properties, Reviews: reviews}
}

// ---------------------------
// Helpers
// ---------------------------

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func formInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	return v
}

func queryInt(c *gin.Context, key string) *int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func jsonStringList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

// collectUploads saves the multipart "images" files and returns their paths.
func collectUploads(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return []string{}, nil
	}
	files := form.File["images"]
	if len(files) > maxPropertyImages {
		files = files[:maxPropertyImages]
	}
	return services.SaveUploadedImages(files)
}

// ---------------------------
// Handlers
// ---------------------------

// Create registers a listing from a multipart form; uploaded files win over a
// JSON images field.
func (pc *PropertyController) Create(c *gin.Context) {
	host, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	images, err := collectUploads(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	if len(images) == 0 {
		images = jsonStringList(c.PostForm("images"))
	}

	input := services.CreatePropertyInput{
		Title:              c.PostForm("title"),
		Description:        c.PostForm("description"),
		Address:            c.PostForm("address"),
		City:               c.PostForm("city"),
		Neighborhood:       c.PostForm("neighborhood"),
		PropertyType:       c.PostForm("propertyType"),
		PricePerNight:      formInt(c, "pricePerNight"),
		CleaningFee:        formInt(c, "cleaningFee"),
		MaxGuests:          formInt(c, "maxGuests"),
		Bedrooms:           formInt(c, "bedrooms"),
		Beds:               formInt(c, "beds"),
		Bathrooms:          formInt(c, "bathrooms"),
		Amenities:          jsonStringList(c.PostForm("amenities")),
		Images:             images,
		HouseRules:         c.PostForm("houseRules"),
		CancellationPolicy: c.PostForm("cancellationPolicy"),
	}

	property, err := pc.Properties.Create(c.Request.Context(), host.ID, input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

// List serves the catalog with AND-combined filters. Admin callers may ask
// for unapproved or inactive rows.
func (pc *PropertyController) List(c *gin.Context) {
	filter := models.PropertyFilter{
		City:         c.Query("city"),
		Neighborhood: c.Query("neighborhood"),
		PropertyType: c.Query("propertyType"),
		MinPrice:     queryInt(c, "minPrice"),
		MaxPrice:     queryInt(c, "maxPrice"),
		MinGuests:    queryInt(c, "guests"),
		MinBedrooms:  queryInt(c, "bedrooms"),
		Approved:     queryBool(c, "isApproved"),
		Active:       queryBool(c, "isActive"),
	}

	isAdmin := false
	if user, ok := middleware.GetUser(c); ok {
		isAdmin = user.Role == models.RoleAdmin
	}

	properties, err := pc.Properties.List(c.Request.Context(), filter, isAdmin)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

func (pc *PropertyController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}
	detail, err := pc.Properties.Detail(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, detail)
}

// Update patches a listing. JSON bodies carry the patch directly; multipart
// bodies are translated field by field, with fresh uploads appended to the
// kept images.
func (pc *PropertyController) Update(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}

	var patch models.PropertyPatch
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		patch = pc.patchFromForm(c)
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	property, err := pc.Properties.Update(c.Request.Context(), caller, id, patch)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (pc *PropertyController) patchFromForm(c *gin.Context) models.PropertyPatch {
	var patch models.PropertyPatch

	setString := func(key string, dst **string) {
		if v, ok := c.GetPostForm(key); ok {
			s := v
			*dst = &s
		}
	}
	setInt := func(key string, dst **int) {
		if v, ok := c.GetPostForm(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = &n
			}
		}
	}

	setString("title", &patch.Title)
	setString("description", &patch.Description)
	setString("address", &patch.Address)
	setString("city", &patch.City)
	setString("neighborhood", &patch.Neighborhood)
	setString("propertyType", &patch.PropertyType)
	setInt("pricePerNight", &patch.PricePerNight)
	setInt("cleaningFee", &patch.CleaningFee)
	setInt("maxGuests", &patch.MaxGuests)
	setInt("bedrooms", &patch.Bedrooms)
	setInt("beds", &patch.Beds)
	setInt("bathrooms", &patch.Bathrooms)
	setString("houseRules", &patch.HouseRules)
	setString("cancellationPolicy", &patch.CancellationPolicy)

	if v, ok := c.GetPostForm("amenities"); ok {
		amenities := jsonStringList(v)
		patch.Amenities = &amenities
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			patch.IsActive = &b
		}
	}

	uploaded, err := collectUploads(c)
	if err == nil && len(uploaded) > 0 {
		images := append(jsonStringList(c.PostForm("keepImages")), uploaded...)
		patch.Images = &images
	} else if kept, ok := c.GetPostForm("keepImages"); ok {
		images := jsonStringList(kept)
		patch.Images = &images
	}
	return patch
}

// Approve is the admin gate; it only ever flips isApproved to true.
func (pc *PropertyController) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}
	property, err := pc.Properties.Approve(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (pc *PropertyController) HostProperties(c *gin.Context) {
	host, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	properties, err := pc.Properties.ByHost(c.Request.Context(), host.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

// PropertyReviews lists a property's reviews with reviewer summaries.
func (pc *PropertyController) PropertyReviews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}
	reviews, err := pc.Reviews.ForProperty(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}
