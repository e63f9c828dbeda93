package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// filterFunc builds a query from the request; false means it already responded.
type filterFunc func(c *gin.Context, route string) (bson.M, bool)

func noFilter(*gin.Context, string) (bson.M, bool) { return bson.M{}, true }

// listDocuments serves a paginated admin listing, newest first.
func listDocuments[T any](store finder[T], route string, filter filterFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		query, ok := filter(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		docs, err := store.Find(ctx, query, pageOptions(page, limit))
		if err != nil {
			respondStoreError(c, route, "", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":  docs,
			"page":  page,
			"limit": limit,
		})
	}
}

func getDocument[T any](store getter[T], route, what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		id, ok := pathID(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		doc, err := store.Get(ctx, id)
		if err != nil {
			respondStoreError(c, route, what, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// updateDocument applies the $set built by build and answers with the
// updated document.
func updateDocument[T any, R any](store updater[T], route, what string, build func(R) (bson.M, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		id, ok := pathID(c, route)
		if !ok {
			return
		}

		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		set, err := build(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		set["updatedAt"] = time.Now().UTC()

		ctx, cancel := requestContext(c)
		defer cancel()

		updated, err := store.Update(ctx, id, set)
		if err != nil {
			respondStoreError(c, route, what, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteDocument(store deleter, route, what string, auditLog AuditLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		id, ok := pathID(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := store.Delete(ctx, id); err != nil {
			respondStoreError(c, route, what, err)
			return
		}
		audit(ctx, auditLog, c, what+"_deleted", id.Hex())
		c.Status(http.StatusNoContent)
	}
}

func sortedBy(field string, order int) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: order}})
}
