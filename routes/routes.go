package routes

import (
	"net/http"
	"strings"

	"blogicum/config"
	"blogicum/controllers"
	"blogicum/handlers"
	"blogicum/middleware"
	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Users    *services.UserService
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Profiles *controllers.ProfileController
	Auth     *controllers.AuthController
	API      *controllers.APIController
	WS       *handlers.WebSocketHandler
}

// NewRouter builds the engine with the HTML renderer and the shared middleware.
func NewRouter(cfg *config.Config, h *Handlers) (*gin.Engine, error) {
	utils.RegisterValidators()

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.MaxMultipartMemory = 8 << 20

	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Authenticate(h.Users, cfg.JWTSecret))
	r.Use(middleware.SameOrigin())

	r.NoRoute(middleware.NotFound)

	if cfg.MediaBackend == "local" || cfg.MediaBackend == "" {
		r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), cfg.MediaDir)
	}

	SetupRoutes(r, cfg, h)
	return r, nil
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", h.Posts.Index)
	r.GET("/category/:slug/", h.Posts.CategoryPosts)
	r.GET("/about/", controllers.About)
	r.GET("/rules/", controllers.Rules)
	r.GET("/profile/:username/", h.Profiles.Profile)

	posts := r.Group("/posts")
	{
		posts.GET("/:id/", h.Posts.PostDetail)

		authed := posts.Group("", middleware.LoginRequired())
		authed.GET("/create/", h.Posts.CreatePost)
		authed.POST("/create/", h.Posts.CreatePost)
		authed.GET("/:id/edit/", h.Posts.EditPost)
		authed.POST("/:id/edit/", h.Posts.EditPost)
		authed.GET("/:id/delete/", h.Posts.DeletePost)
		authed.POST("/:id/delete/", h.Posts.DeletePost)

		authed.POST("/:id/comment/", h.Comments.AddComment)
		authed.GET("/:id/edit_comment/:comment_id/", h.Comments.EditComment)
		authed.POST("/:id/edit_comment/:comment_id/", h.Comments.EditComment)
		authed.GET("/:id/delete_comment/:comment_id/", h.Comments.DeleteComment)
		authed.POST("/:id/delete_comment/:comment_id/", h.Comments.DeleteComment)
	}

	profile := r.Group("/profile", middleware.LoginRequired())
	{
		profile.GET("/edit_profile/", h.Profiles.EditProfile)
		profile.POST("/edit_profile/", h.Profiles.EditProfile)
	}

	auth := r.Group("/auth")
	{
		auth.GET("/login/", h.Auth.LoginPage)
		auth.POST("/login/", h.Auth.Login)
		auth.POST("/logout/", h.Auth.Logout)
		auth.GET("/registration/", h.Auth.Registration)
		auth.POST("/registration/", h.Auth.Registration)
	}

	api := r.Group("/api/v1")
	{
		apiAuth := api.Group("/auth")
		{
			apiAuth.POST("/register", h.Auth.APIRegister)
			apiAuth.POST("/login", h.Auth.APILogin)
			apiAuth.GET("/me", middleware.APIAuthRequired(), h.Auth.Me)
		}

		api.GET("/ws", middleware.APIAuthRequired(), h.WS.HandleWebSocket)
		api.DELETE("/users/me", middleware.APIAuthRequired(), h.Auth.DeleteMe)

		api.GET("/posts", h.API.GetPosts)
		api.GET("/posts/:id", h.API.GetPost)
		api.GET("/categories", h.API.GetCategories)

		staff := api.Group("", middleware.StaffRequired())
		{
			staff.POST("/categories", h.API.CreateCategory)
			staff.PUT("/categories/:id", h.API.UpdateCategory)
			staff.DELETE("/categories/:id", h.API.DeleteCategory)

			staff.GET("/locations", h.API.GetLocations)
			staff.POST("/locations", h.API.CreateLocation)
			staff.PUT("/locations/:id", h.API.UpdateLocation)
			staff.DELETE("/locations/:id", h.API.DeleteLocation)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
