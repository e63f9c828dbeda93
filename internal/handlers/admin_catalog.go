package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cafe/internal/models"
)

const dateLayout = "2006-01-02"

/* =========================
   CATEGORIES
========================= */

type CategoryCreateRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	NameEn string `json:"nameEn" binding:"max=100"`
	Order  int    `json:"order"`
	Active *bool  `json:"active"`
}

type CategoryUpdateRequest struct {
	Name   *string `json:"name"`
	NameEn *string `json:"nameEn"`
	Order  *int    `json:"order"`
	Active *bool   `json:"active"`
}

/*
GET /admin/api/categories
- All categories, inactive included, in menu order
*/
func GetAllCategories(store finder[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/categories"
		defer handlePanic(c, route)

		filter := bson.M{}
		// ?active=true/false
		if v := strings.TrimSpace(c.Query("active")); v != "" {
			filter["active"] = v == "true"
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := store.Find(ctx, filter, sortedBy("order", 1))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

/*
POST /admin/api/categories
- Two categories cannot share a name
*/
func CreateCategory(store documentStore[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/categories"
		defer handlePanic(c, route)

		var req CategoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		// duplicate check
		existing, err := store.Find(ctx, bson.M{"name": name}, options.Find().SetLimit(1))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if len(existing) > 0 {
			respondWithError(c, http.StatusConflict, route, "category already exists")
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		now := time.Now().UTC()
		category := models.Category{
			Name:      name,
			NameEn:    strings.TrimSpace(req.NameEn),
			Order:     req.Order,
			Active:    active,
			CreatedAt: now,
			UpdatedAt: now,
		}

		id, err := store.Create(ctx, &category)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		category.ID = id

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(store updater[models.Category]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/categories/:id", "category", func(req CategoryUpdateRequest) (bson.M, error) {
		set := bson.M{}
		if name := trimmed(req.Name); name != nil {
			if *name == "" {
				return nil, errors.New("name cannot be empty")
			}
			set["name"] = *name
		}
		if nameEn := trimmed(req.NameEn); nameEn != nil {
			set["nameEn"] = *nameEn
		}
		if req.Order != nil {
			set["order"] = *req.Order
		}
		if req.Active != nil {
			set["active"] = *req.Active
		}
		return set, nil
	})
}

/*
DELETE /admin/api/categories/:id
- Soft delete: the category is hidden, its items keep their reference
*/
func DeleteCategory(store updater[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/categories/:id"
		defer handlePanic(c, route)

		id, ok := pathID(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := store.Update(ctx, id, bson.M{"active": false, "updatedAt": time.Now().UTC()}); err != nil {
			respondStoreError(c, route, "category", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

/* =========================
   MENU ITEMS
========================= */

type ItemCreateRequest struct {
	Name            string  `json:"name" binding:"required,max=150"`
	NameEn          string  `json:"nameEn" binding:"max=150"`
	Description     string  `json:"description" binding:"max=1000"`
	DescriptionEn   string  `json:"descriptionEn" binding:"max=1000"`
	Price           float64 `json:"price" binding:"gte=0"`
	DiscountPercent float64 `json:"discountPercent" binding:"gte=0,lte=100"`
	CategoryID      string  `json:"categoryId" binding:"required"`
	ImageURL        string  `json:"imageUrl" binding:"omitempty,url"`
	Available       *bool   `json:"available"`
	IsNew           bool    `json:"isNew"`
	IsOnOffer       bool    `json:"isOnOffer"`
}

type ItemUpdateRequest struct {
	Name            *string  `json:"name"`
	NameEn          *string  `json:"nameEn"`
	Description     *string  `json:"description"`
	DescriptionEn   *string  `json:"descriptionEn"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DiscountPercent *float64 `json:"discountPercent" binding:"omitempty,gte=0,lte=100"`
	CategoryID      *string  `json:"categoryId"`
	ImageURL        *string  `json:"imageUrl"`
	Available       *bool    `json:"available"`
	IsNew           *bool    `json:"isNew"`
	IsOnOffer       *bool    `json:"isOnOffer"`
}

func itemFilter(c *gin.Context, route string) (bson.M, bool) {
	filter := bson.M{}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category")
			return nil, false
		}
		filter["categoryId"] = id
	}
	if v := strings.TrimSpace(c.Query("available")); v != "" {
		filter["available"] = v == "true"
	}
	return filter, true
}

func GetAllItems(store finder[models.MenuItem]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/items", itemFilter)
}

func CreateItem(store creator[models.MenuItem]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/items"
		defer handlePanic(c, route)

		var req ItemCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}
		categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid categoryId")
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		now := time.Now().UTC()
		item := models.MenuItem{
			Name:            name,
			NameEn:          strings.TrimSpace(req.NameEn),
			Description:     strings.TrimSpace(req.Description),
			DescriptionEn:   strings.TrimSpace(req.DescriptionEn),
			Price:           models.RoundMoney(req.Price),
			DiscountPercent: req.DiscountPercent,
			CategoryID:      categoryID,
			ImageURL:        strings.TrimSpace(req.ImageURL),
			Available:       available,
			IsNew:           req.IsNew,
			IsOnOffer:       req.IsOnOffer,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := store.Create(ctx, &item)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		item.ID = id

		c.JSON(http.StatusCreated, item)
	}
}

func UpdateItem(store updater[models.MenuItem]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/items/:id", "item", func(req ItemUpdateRequest) (bson.M, error) {
		set := bson.M{}
		if name := trimmed(req.Name); name != nil {
			if *name == "" {
				return nil, errors.New("name cannot be empty")
			}
			set["name"] = *name
		}
		setString(set, "nameEn", req.NameEn)
		setString(set, "description", req.Description)
		setString(set, "descriptionEn", req.DescriptionEn)
		setString(set, "imageUrl", req.ImageURL)
		if req.Price != nil {
			set["price"] = models.RoundMoney(*req.Price)
		}
		if req.DiscountPercent != nil {
			set["discountPercent"] = *req.DiscountPercent
		}
		if req.CategoryID != nil {
			id, err := primitive.ObjectIDFromHex(*req.CategoryID)
			if err != nil {
				return nil, errors.New("invalid categoryId")
			}
			set["categoryId"] = id
		}
		setBool(set, "available", req.Available)
		setBool(set, "isNew", req.IsNew)
		setBool(set, "isOnOffer", req.IsOnOffer)
		return set, nil
	})
}

/* =========================
   OFFERS
========================= */

type OfferCreateRequest struct {
	Title           string  `json:"title" binding:"required,max=150"`
	Description     string  `json:"description" binding:"max=1000"`
	ImageURL        string  `json:"imageUrl" binding:"omitempty,url"`
	OriginalPrice   float64 `json:"originalPrice" binding:"gte=0"`
	OfferPrice      float64 `json:"offerPrice" binding:"gte=0"`
	DiscountPercent float64 `json:"discountPercent" binding:"gte=0,lte=100"`
	StartDate       string  `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate         string  `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Active          *bool   `json:"active"`
	Featured        bool    `json:"featured"`
}

type OfferUpdateRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"imageUrl"`
	OriginalPrice   *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	OfferPrice      *float64 `json:"offerPrice" binding:"omitempty,gte=0"`
	DiscountPercent *float64 `json:"discountPercent" binding:"omitempty,gte=0,lte=100"`
	StartDate       *string  `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string  `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Active          *bool    `json:"active"`
	Featured        *bool    `json:"featured"`
}

var errOfferWindow = errors.New("endDate must not be before startDate")

func GetAllOffers(store finder[models.Offer]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/offers", noFilter)
}

func CreateOffer(store creator[models.Offer]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/offers"
		defer handlePanic(c, route)

		var req OfferCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
			respondWithError(c, http.StatusBadRequest, route, errOfferWindow.Error())
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		now := time.Now().UTC()
		offer := models.Offer{
			Title:           strings.TrimSpace(req.Title),
			Description:     strings.TrimSpace(req.Description),
			ImageURL:        strings.TrimSpace(req.ImageURL),
			OriginalPrice:   models.RoundMoney(req.OriginalPrice),
			OfferPrice:      models.RoundMoney(req.OfferPrice),
			DiscountPercent: req.DiscountPercent,
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			Active:          active,
			Featured:        req.Featured,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if offer.Title == "" {
			respondWithError(c, http.StatusBadRequest, route, "title required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := store.Create(ctx, &offer)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		offer.ID = id

		c.JSON(http.StatusCreated, offer)
	}
}

func UpdateOffer(store updater[models.Offer]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/offers/:id", "offer", func(req OfferUpdateRequest) (bson.M, error) {
		if req.StartDate != nil && req.EndDate != nil && *req.EndDate != "" && *req.EndDate < *req.StartDate {
			return nil, errOfferWindow
		}
		set := bson.M{}
		if title := trimmed(req.Title); title != nil {
			if *title == "" {
				return nil, errors.New("title cannot be empty")
			}
			set["title"] = *title
		}
		setString(set, "description", req.Description)
		setString(set, "imageUrl", req.ImageURL)
		setString(set, "startDate", req.StartDate)
		setString(set, "endDate", req.EndDate)
		if req.OriginalPrice != nil {
			set["originalPrice"] = models.RoundMoney(*req.OriginalPrice)
		}
		if req.OfferPrice != nil {
			set["offerPrice"] = models.RoundMoney(*req.OfferPrice)
		}
		if req.DiscountPercent != nil {
			set["discountPercent"] = *req.DiscountPercent
		}
		setBool(set, "active", req.Active)
		setBool(set, "featured", req.Featured)
		return set, nil
	})
}

/* =========================
   JOBS
========================= */

type JobCreateRequest struct {
	Title        string            `json:"title" binding:"required,max=150"`
	Description  string            `json:"description" binding:"required,max=3000"`
	Requirements models.StringList `json:"requirements"`
	Salary       string            `json:"salary" binding:"max=100"`
	WorkType     models.WorkType   `json:"workType" binding:"required,oneof=full-time part-time temporary"`
	Location     string            `json:"location" binding:"max=150"`
	Active       *bool             `json:"active"`
}

type JobUpdateRequest struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Requirements *models.StringList `json:"requirements"`
	Salary       *string            `json:"salary"`
	WorkType     *models.WorkType   `json:"workType" binding:"omitempty,oneof=full-time part-time temporary"`
	Location     *string            `json:"location"`
	Active       *bool              `json:"active"`
}

func GetAllJobs(store finder[models.Job]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/jobs", noFilter)
}

func CreateJob(store creator[models.Job]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/jobs"
		defer handlePanic(c, route)

		var req JobCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		now := time.Now().UTC()
		job := models.Job{
			Title:        strings.TrimSpace(req.Title),
			Description:  strings.TrimSpace(req.Description),
			Requirements: models.NormalizeLines(req.Requirements),
			Salary:       strings.TrimSpace(req.Salary),
			WorkType:     req.WorkType,
			Location:     strings.TrimSpace(req.Location),
			Active:       active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if job.Title == "" || job.Description == "" {
			respondWithError(c, http.StatusBadRequest, route, "title and description are required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := store.Create(ctx, &job)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		job.ID = id

		c.JSON(http.StatusCreated, job)
	}
}

func UpdateJob(store updater[models.Job]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/jobs/:id", "job", func(req JobUpdateRequest) (bson.M, error) {
		set := bson.M{}
		if title := trimmed(req.Title); title != nil {
			if *title == "" {
				return nil, errors.New("title cannot be empty")
			}
			set["title"] = *title
		}
		if description := trimmed(req.Description); description != nil {
			if *description == "" {
				return nil, errors.New("description cannot be empty")
			}
			set["description"] = *description
		}
		if req.Requirements != nil {
			set["requirements"] = models.NormalizeLines(*req.Requirements)
		}
		setString(set, "salary", req.Salary)
		setString(set, "location", req.Location)
		if req.WorkType != nil {
			set["workType"] = *req.WorkType
		}
		setBool(set, "active", req.Active)
		return set, nil
	})
}

func setString(set bson.M, key string, v *string) {
	if t := trimmed(v); t != nil {
		set[key] = *t
	}
}

func setBool(set bson.M, key string, v *bool) {
	if v != nil {
		set[key] = *v
	}
}

func DeleteItem(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/items/:id", "item", auditLog)
}

func DeleteOffer(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/offers/:id", "offer", auditLog)
}

func DeleteJob(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/jobs/:id", "job", auditLog)
}
