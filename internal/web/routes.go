package web

import (
	"github.com/gin-gonic/gin"

	"github.com/arvind-ks/roomhub/internal/middleware"
)

// RegisterRoutes wires every HTML route onto the engine. The split is
// auth state, not HTTP method: browsing is public, every mutation sits
// behind RequireLogin. Callers install middleware.CurrentUser before
// this so the public pages can still greet a logged-in visitor.
func RegisterRoutes(
	srv *gin.Engine,
	auth *AuthHandler,
	rooms *RoomHandler,
	messages *MessageHandler,
	users *UserHandler,
	feeds *FeedHandler,
) {
	srv.GET("/login", auth.LoginForm)
	srv.POST("/login", auth.Login)
	srv.GET("/logout", auth.Logout)
	srv.GET("/register", auth.RegisterForm)
	srv.POST("/register", auth.Register)

	srv.GET("/", rooms.Home)
	srv.GET("/room/:id", rooms.Show)
	srv.GET("/profile/:id", users.Profile)
	srv.GET("/topics", feeds.Topics)
	srv.GET("/activity", feeds.Activity)

	authed := srv.Group("/")
	authed.Use(middleware.RequireLogin())
	{
		authed.POST("/room/:id", rooms.PostMessage)
		authed.GET("/room-create", rooms.CreateForm)
		authed.POST("/room-create", rooms.Create)
		authed.GET("/update-room/:id", rooms.UpdateForm)
		authed.POST("/update-room/:id", rooms.Update)
		authed.GET("/delete-room/:id", rooms.DeleteForm)
		authed.POST("/delete-room/:id", rooms.Delete)
		authed.GET("/delete-message/:id", messages.DeleteForm)
		authed.POST("/delete-message/:id", messages.Delete)
		authed.GET("/update-user", users.UpdateForm)
		authed.POST("/update-user", users.Update)
	}
}
