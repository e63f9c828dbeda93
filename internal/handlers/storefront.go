package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cafe/internal/models"
)

/*
GET /settings
- Shop branding and order rules, without the recipient list
*/
func GetPublicSettings(settings SettingsLoader, defaultShopName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := settings.Load(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if s == nil {
			s = &models.Settings{ShopName: defaultShopName}
		}
		c.JSON(http.StatusOK, s.Public())
	}
}

func GetCategories(store finder[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := store.Find(ctx,
			bson.M{"active": true},
			options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

/*
GET /items
- Only available items
- ?category=<id> narrows to one category
*/
func GetItems(store finder[models.MenuItem]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /items"
		defer handlePanic(c, route)

		filter := bson.M{"available": true}
		if raw := strings.TrimSpace(c.Query("category")); raw != "" {
			categoryID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid category")
				return
			}
			filter["categoryId"] = categoryID
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := store.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetFeaturedItems lists available items flagged as new or on offer.
func GetFeaturedItems(store finder[models.MenuItem]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /items/featured"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := store.Find(ctx, bson.M{
			"available": true,
			"$or":       bson.A{bson.M{"isNew": true}, bson.M{"isOnOffer": true}},
		}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

/*
GET /offers
- Active offers whose date window contains today in the shop's time zone
*/
func GetOffers(store finder[models.Offer], loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /offers"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		offers, err := store.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		today := time.Now().In(loc).Format(dateLayout)
		running := make([]models.Offer, 0, len(offers))
		for _, o := range offers {
			if o.RunningOn(today) {
				running = append(running, o)
			}
		}
		c.JSON(http.StatusOK, running)
	}
}

func GetJobs(store finder[models.Job]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /jobs"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		jobs, err := store.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

/*
GET /comments
- Approved reviews, newest first
- ?limit=N (default 20, max 100), ?itemId=<id>
*/
func GetComments(store finder[models.Comment]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /comments"
		defer handlePanic(c, route)

		limit := int64(20)
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 {
				respondWithError(c, http.StatusBadRequest, route, "invalid limit")
				return
			}
			limit = min(n, maxPageSize)
		}

		filter := bson.M{"approved": true}
		if raw := strings.TrimSpace(c.Query("itemId")); raw != "" {
			itemID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid itemId")
				return
			}
			filter["itemId"] = itemID
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		comments, err := store.Find(ctx, filter, options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		for i := range comments {
			comments[i].UserEmail = ""
		}
		c.JSON(http.StatusOK, comments)
	}
}
