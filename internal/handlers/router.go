package handlers

import (
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/session"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	auth                *AuthMiddleware
	authHandler         *AuthHandler
	announcementHandler *AnnouncementHandler
	eventHandler        *EventHandler
	newsHandler         *NewsHandler
	galleryHandler      *GalleryHandler
	siteHandler         *SiteHandler
	videoClassHandler   *VideoClassHandler
	forumHandler        *ForumHandler
	contactHandler      *ContactHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	registry *session.Registry,
	jwtSecret string,
	v *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	auth := NewAuthMiddleware(registry, jwtSecret, logger)

	return &HandlerManager{
		auth:                auth,
		authHandler:         NewAuthHandler(registry, auth, serviceManager.Notifications(), v, logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcements(), logger),
		eventHandler:        NewEventHandler(serviceManager.Events(), logger),
		newsHandler:         NewNewsHandler(serviceManager.News(), logger),
		galleryHandler:      NewGalleryHandler(serviceManager.Gallery(), logger),
		siteHandler:         NewSiteHandler(serviceManager.SiteContent(), logger),
		videoClassHandler:   NewVideoClassHandler(serviceManager.VideoClasses(), logger),
		forumHandler:        NewForumHandler(serviceManager.Forum(), logger),
		contactHandler:      NewContactHandler(serviceManager.Contact(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Public site: no session required
		v1.POST("/auth/login", hm.authHandler.Login)
		v1.POST("/auth/signup", hm.authHandler.Signup)

		v1.GET("/announcements", hm.announcementHandler.ListAnnouncements)
		v1.GET("/announcements/:id", hm.announcementHandler.GetAnnouncement)
		v1.GET("/events", hm.eventHandler.ListEvents)
		v1.GET("/events/upcoming", hm.eventHandler.UpcomingEvents)
		v1.GET("/events/:id", hm.eventHandler.GetEvent)
		v1.GET("/news", hm.newsHandler.ListNews)
		v1.GET("/news/:id", hm.newsHandler.GetNews)
		v1.GET("/gallery", hm.galleryHandler.ListImages)
		v1.GET("/achievements", hm.galleryHandler.ListAchievements)
		v1.GET("/site/about", hm.siteHandler.AboutSections)
		v1.GET("/site/academics", hm.siteHandler.AcademicPrograms)
		v1.GET("/site/admissions", hm.siteHandler.AdmissionRequirements)
		v1.POST("/contact", hm.contactHandler.SubmitMessage)

		// Session routes: bearer token required
		authed := v1.Group("")
		authed.Use(hm.auth.RequireSession())
		{
			authed.POST("/auth/logout", hm.authHandler.Logout)
			authed.GET("/auth/me", hm.authHandler.Me)

			signedIn := authed.Group("")
			signedIn.Use(hm.auth.RequireAuthenticated())
			{
				signedIn.PUT("/auth/profile", hm.authHandler.UpdateProfile)

				// Dashboard: any signed-in role
				signedIn.GET("/video-classes", hm.videoClassHandler.ListVideoClasses)
				signedIn.GET("/forum/questions", hm.forumHandler.ListQuestions)
				signedIn.GET("/forum/questions/:id", hm.forumHandler.GetQuestion)
				signedIn.POST("/forum/questions", hm.forumHandler.AskQuestion)
				signedIn.POST("/forum/questions/:id/answers", hm.forumHandler.AnswerQuestion)
				signedIn.POST("/forum/questions/:id/resolve", hm.forumHandler.ResolveQuestion)
			}

			// Staff: teachers and admins
			staff := authed.Group("")
			staff.Use(hm.auth.RequireRoles(models.RoleTeacher, models.RoleAdmin))
			{
				staff.POST("/announcements", hm.announcementHandler.CreateAnnouncement)
				staff.PUT("/announcements/:id", hm.announcementHandler.UpdateAnnouncement)
				staff.DELETE("/announcements/:id", hm.announcementHandler.DeleteAnnouncement)
				staff.POST("/announcements/:id/publish", hm.announcementHandler.PublishAnnouncement)

				staff.POST("/events", hm.eventHandler.CreateEvent)
				staff.PUT("/events/:id", hm.eventHandler.UpdateEvent)
				staff.DELETE("/events/:id", hm.eventHandler.DeleteEvent)

				staff.POST("/video-classes", hm.videoClassHandler.CreateVideoClass)
				staff.DELETE("/video-classes/:id", hm.videoClassHandler.DeleteVideoClass)
			}

			// Admin only
			admin := authed.Group("/admin")
			admin.Use(hm.auth.RequireRoles(models.RoleAdmin))
			{
				admin.POST("/news", hm.newsHandler.CreateNews)
				admin.PUT("/news/:id", hm.newsHandler.UpdateNews)
				admin.DELETE("/news/:id", hm.newsHandler.DeleteNews)

				admin.POST("/gallery", hm.galleryHandler.UploadImage)
				admin.DELETE("/gallery/:id", hm.galleryHandler.DeleteImage)
				admin.POST("/achievements", hm.galleryHandler.AddAchievement)

				admin.PUT("/site/about", hm.siteHandler.UpsertAboutSection)
				admin.DELETE("/site/about/:id", hm.siteHandler.DeleteAboutSection)

				admin.GET("/contact", hm.contactHandler.ListMessages)
				admin.POST("/contact/:id/respond", hm.contactHandler.MarkResponded)
				admin.GET("/contact/export", hm.contactHandler.ExportMessages)
			}
		}
	}
}
