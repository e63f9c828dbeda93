package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cafe/internal/models"
)

/* =========================
   COMMENTS
========================= */

var errEmptyReply = errors.New("reply cannot be empty")

func commentFilter(c *gin.Context, _ string) (bson.M, bool) {
	filter := bson.M{}
	if v := strings.TrimSpace(c.Query("approved")); v != "" {
		filter["approved"] = v == "true"
	}
	return filter, true
}

func GetAllComments(store finder[models.Comment]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/comments", commentFilter)
}

type commentApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func ApproveComment(store updater[models.Comment]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/comments/:id/approve", "comment", func(req commentApprovalRequest) (bson.M, error) {
		return bson.M{"approved": *req.Approved}, nil
	})
}

type commentReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=1000"`
}

// ReplyToComment stores the admin reply; replying also publishes the comment.
func ReplyToComment(store updater[models.Comment]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/comments/:id/reply", "comment", func(req commentReplyRequest) (bson.M, error) {
		reply := strings.TrimSpace(req.Reply)
		if reply == "" {
			return nil, errEmptyReply
		}
		return bson.M{"adminReply": reply, "approved": true}, nil
	})
}

func DeleteComment(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/comments/:id", "comment", auditLog)
}

/* =========================
   CONTACT MESSAGES
========================= */

func messageFilter(c *gin.Context, _ string) (bson.M, bool) {
	filter := bson.M{}
	if v := strings.TrimSpace(c.Query("read")); v != "" {
		filter["read"] = v == "true"
	}
	return filter, true
}

func GetContactMessages(store finder[models.ContactMessage]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/messages", messageFilter)
}

type markReadRequest struct {
	Read *bool `json:"read"`
}

// MarkMessageRead defaults to read=true when the body omits the flag.
func MarkMessageRead(store updater[models.ContactMessage]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/messages/:id/read", "message", func(req markReadRequest) (bson.M, error) {
		read := true
		if req.Read != nil {
			read = *req.Read
		}
		return bson.M{"read": read}, nil
	})
}

func DeleteContactMessage(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/messages/:id", "message", auditLog)
}

/* =========================
   JOB APPLICATIONS
========================= */

func applicationFilter(c *gin.Context, route string) (bson.M, bool) {
	filter := bson.M{}
	if raw := strings.TrimSpace(c.Query("jobId")); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid jobId")
			return nil, false
		}
		filter["jobId"] = id
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if !models.ApplicationStatus(v).Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return nil, false
		}
		filter["status"] = v
	}
	return filter, true
}

func GetJobApplications(store finder[models.JobApplication]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/applications", applicationFilter)
}

type applicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=new reviewing interviewed accepted rejected"`
}

// UpdateApplicationStatus also marks the application as read.
func UpdateApplicationStatus(store updater[models.JobApplication]) gin.HandlerFunc {
	return updateDocument(store, "PUT /admin/api/applications/:id/status", "application", func(req applicationStatusRequest) (bson.M, error) {
		return bson.M{"status": req.Status, "read": true}, nil
	})
}

func DeleteJobApplication(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/applications/:id", "application", auditLog)
}
