package main

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"cafe/internal/config"
	"cafe/internal/handlers"
	"cafe/internal/metrics"
	"cafe/internal/middleware"
	"cafe/internal/models"
	"cafe/internal/notify"
	"cafe/internal/ordering"
	"cafe/internal/repository"
	"cafe/internal/telegram"
)

type application struct {
	cfg     config.Config
	mongo   *mongo.Client
	metrics *metrics.Registry
	limiter *middleware.RateLimiter

	settings   *repository.SettingsRepository
	adminLogs  *repository.AdminLogRepository
	admins     *repository.Documents[models.Admin]
	orders     *repository.Documents[models.Order]
	items      *repository.Documents[models.MenuItem]
	categories *repository.Documents[models.Category]
	offers     *repository.Documents[models.Offer]
	comments   *repository.Documents[models.Comment]
	messages   *repository.Documents[models.ContactMessage]
	jobs       *repository.Documents[models.Job]
	apps       *repository.Documents[models.JobApplication]

	bot        *telegram.Client
	resolver   *notify.Resolver
	dispatcher *notify.Dispatcher
	ordering   *ordering.Service
}

func (a *application) registerRoutes(r *gin.Engine) {
	limited := a.limiter.Middleware()

	r.GET("/healthz", handlers.Health(a.mongo))
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// storefront
	r.GET("/settings", handlers.GetPublicSettings(a.settings, a.cfg.ShopName))
	r.GET("/categories", handlers.GetCategories(a.categories))
	r.GET("/items", handlers.GetItems(a.items))
	r.GET("/items/featured", handlers.GetFeaturedItems(a.items))
	r.GET("/offers", handlers.GetOffers(a.offers, a.cfg.Location()))
	r.GET("/jobs", handlers.GetJobs(a.jobs))
	r.GET("/comments", handlers.GetComments(a.comments))

	r.POST("/orders", limited, handlers.CreateOrder(a.items, a.ordering))
	r.POST("/comments", limited, handlers.CreateComment(a.comments, a.dispatcher))
	r.POST("/messages", limited, handlers.CreateContactMessage(a.messages, a.dispatcher))
	r.POST("/jobs/:id/applications", limited, handlers.CreateJobApplication(a.jobs, a.apps, a.dispatcher))

	// telegram
	r.POST("/telegram/webhook", handlers.TelegramWebhook(a.settings, a.dispatcher, a.cfg.TelegramWebhookSecret))
	r.POST("/api/notifications/order", limited, handlers.SendOrderToTelegram(handlers.NotificationDeps{
		Orders:     a.orders,
		Recipients: a.resolver,
		Sender:     a.dispatcher,
		Bot:        a.bot,
		Audit:      a.adminLogs,
	}))

	r.POST("/admin/login", limited, handlers.AdminLogin(a.admins, a.cfg.JWTSecret, a.cfg.AccessTokenTTL, a.adminLogs))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(a.cfg.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"email": middleware.AdminEmail(c)})
		})

		admin.GET("/categories", handlers.GetAllCategories(a.categories))
		admin.POST("/categories", handlers.CreateCategory(a.categories))
		admin.PUT("/categories/:id", handlers.UpdateCategory(a.categories))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(a.categories))

		admin.GET("/items", handlers.GetAllItems(a.items))
		admin.POST("/items", handlers.CreateItem(a.items))
		admin.PUT("/items/:id", handlers.UpdateItem(a.items))
		admin.DELETE("/items/:id", handlers.DeleteItem(a.items, a.adminLogs))

		admin.GET("/offers", handlers.GetAllOffers(a.offers))
		admin.POST("/offers", handlers.CreateOffer(a.offers))
		admin.PUT("/offers/:id", handlers.UpdateOffer(a.offers))
		admin.DELETE("/offers/:id", handlers.DeleteOffer(a.offers, a.adminLogs))

		admin.GET("/jobs", handlers.GetAllJobs(a.jobs))
		admin.POST("/jobs", handlers.CreateJob(a.jobs))
		admin.PUT("/jobs/:id", handlers.UpdateJob(a.jobs))
		admin.DELETE("/jobs/:id", handlers.DeleteJob(a.jobs, a.adminLogs))

		admin.GET("/orders", handlers.GetOrders(a.orders))
		admin.GET("/orders/:id", handlers.GetOrder(a.orders))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(a.orders, a.dispatcher, a.adminLogs))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(a.orders, a.adminLogs))

		admin.GET("/comments", handlers.GetAllComments(a.comments))
		admin.PUT("/comments/:id/approve", handlers.ApproveComment(a.comments))
		admin.PUT("/comments/:id/reply", handlers.ReplyToComment(a.comments))
		admin.DELETE("/comments/:id", handlers.DeleteComment(a.comments, a.adminLogs))

		admin.GET("/messages", handlers.GetContactMessages(a.messages))
		admin.PUT("/messages/:id/read", handlers.MarkMessageRead(a.messages))
		admin.DELETE("/messages/:id", handlers.DeleteContactMessage(a.messages, a.adminLogs))

		admin.GET("/applications", handlers.GetJobApplications(a.apps))
		admin.PUT("/applications/:id/status", handlers.UpdateApplicationStatus(a.apps))
		admin.DELETE("/applications/:id", handlers.DeleteJobApplication(a.apps, a.adminLogs))

		admin.GET("/settings", handlers.GetSettings(a.settings))
		admin.PUT("/settings", handlers.UpdateSettings(a.settings, a.adminLogs))
	}
}
