package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cafe/internal/models"
	"cafe/internal/notify"
)

type createCommentRequest struct {
	ItemID    string `json:"itemId"`
	UserName  string `json:"userName" binding:"required,max=100"`
	UserEmail string `json:"userEmail" binding:"omitempty,email"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Text      string `json:"text" binding:"required,max=1000"`
}

/*
POST /comments
- Stored unapproved; an admin approves or replies before it shows up
*/
func CreateComment(store creator[models.Comment], notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /comments"
		defer handlePanic(c, route)

		var req createCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		comment := models.Comment{
			UserName:  strings.TrimSpace(req.UserName),
			UserEmail: strings.ToLower(strings.TrimSpace(req.UserEmail)),
			Rating:    req.Rating,
			Text:      strings.TrimSpace(req.Text),
			Approved:  false,
		}
		if comment.UserName == "" || comment.Text == "" {
			respondWithError(c, http.StatusBadRequest, route, "userName and text are required")
			return
		}
		if raw := strings.TrimSpace(req.ItemID); raw != "" {
			itemID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid itemId")
				return
			}
			comment.ItemID = &itemID
		}
		comment.CreatedAt = time.Now().UTC()
		comment.UpdatedAt = comment.CreatedAt

		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := store.Create(ctx, &comment)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not save comment")
			return
		}
		comment.ID = id

		notifier.Dispatch(ctx, notify.ReviewRecord{Comment: comment}, id.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}

type createMessageRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=30"`
	Message string `json:"message" binding:"required,max=2000"`
}

func CreateContactMessage(store creator[models.ContactMessage], notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /messages"
		defer handlePanic(c, route)

		var req createMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		now := time.Now().UTC()
		msg := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Message:   strings.TrimSpace(req.Message),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if msg.Name == "" || msg.Message == "" {
			respondWithError(c, http.StatusBadRequest, route, "name and message are required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := store.Create(ctx, &msg)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not save message")
			return
		}
		msg.ID = id

		notifier.Dispatch(ctx, notify.ContactRecord{Message: msg}, id.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}

type createApplicationRequest struct {
	ApplicantName  string `json:"applicantName" binding:"required,max=100"`
	ApplicantPhone string `json:"applicantPhone" binding:"required,max=30"`
	ApplicantEmail string `json:"applicantEmail" binding:"omitempty,email"`
	CVURL          string `json:"cvUrl" binding:"omitempty,url"`
	Message        string `json:"message" binding:"max=2000"`
}

/*
POST /jobs/:id/applications
- The job must exist and still be open
- The job title is copied so the application reads the same after edits
*/
func CreateJobApplication(jobs getter[models.Job], store creator[models.JobApplication], notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /jobs/:id/applications"
		defer handlePanic(c, route)

		jobID, ok := pathID(c, route)
		if !ok {
			return
		}

		var req createApplicationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		job, err := jobs.Get(ctx, jobID)
		if err != nil {
			respondStoreError(c, route, "job", err)
			return
		}
		if !job.Active {
			respondWithError(c, http.StatusConflict, route, "job is no longer open")
			return
		}

		now := time.Now().UTC()
		app := models.JobApplication{
			JobID:          job.ID,
			JobTitle:       job.Title,
			ApplicantName:  strings.TrimSpace(req.ApplicantName),
			ApplicantPhone: strings.TrimSpace(req.ApplicantPhone),
			ApplicantEmail: strings.ToLower(strings.TrimSpace(req.ApplicantEmail)),
			CVURL:          strings.TrimSpace(req.CVURL),
			Message:        strings.TrimSpace(req.Message),
			Status:         models.ApplicationStatusNew,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if app.ApplicantName == "" || app.ApplicantPhone == "" {
			respondWithError(c, http.StatusBadRequest, route, "applicantName and applicantPhone are required")
			return
		}

		id, err := store.Create(ctx, &app)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not save application")
			return
		}
		app.ID = id

		notifier.Dispatch(ctx, notify.ApplicationRecord{Application: app}, id.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}
