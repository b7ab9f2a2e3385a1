package router

import (
	"StudyVillage/src/core/middleware"
	"StudyVillage/src/modules/admin"
	"StudyVillage/src/modules/authentication"
	"StudyVillage/src/modules/materials"
	"StudyVillage/src/modules/posts"
	"StudyVillage/src/modules/quizzes"
	"StudyVillage/src/modules/users"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func InitialiseAndSetupRoutes(app *fiber.App) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	apiV1 := root.Group("/api/v1")
	setupAPIV1Routes(apiV1)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}

func setupAPIV1Routes(router fiber.Router) {
	authGroup := router.Group("/auth")
	userGroup := router.Group("/users")
	materialGroup := router.Group("/materials")
	quizGroup := router.Group("/quizzes")
	postGroup := router.Group("/posts")
	adminGroup := router.Group("/admin", middleware.Protected(), middleware.AdminOnly())

	// Authentication routes
	authGroup.Post("/signup", authentication.SignUp)
	authGroup.Post("/signin", authentication.SignIn)

	// User routes
	userGroup.Get("/profile", middleware.Protected(), users.GetProfile)
	userGroup.Put("/profile", middleware.Protected(), users.UpdateProfile)
	userGroup.Post("/upload-profile-photo", middleware.Protected(), users.UploadProfilePhoto)
	userGroup.Get("/attempts", middleware.Protected(), quizzes.AttemptHistory)

	// Study material routes
	materialGroup.Get("/", middleware.Protected(), materials.ListMaterials)
	materialGroup.Get("/career-tip", middleware.Protected(), admin.GetCareerTip)

	// Quiz routes. The live leaderboard socket authenticates in its own
	// upgrade handler instead of the jwt middleware.
	quizGroup.Get("/", middleware.Protected(), quizzes.ListQuizzes)
	quizGroup.Get("/:id", middleware.Protected(), quizzes.GetQuiz)
	quizGroup.Post("/:id/attempts", middleware.Protected(), quizzes.StartAttempt)
	quizGroup.Get("/:id/attempts", middleware.Protected(), quizzes.MyAttempts)
	quizGroup.Put("/attempts/:attempt_id/answers", middleware.Protected(), quizzes.SaveAnswers)
	quizGroup.Post("/attempts/:attempt_id/submit", middleware.Protected(), quizzes.SubmitAttempt)
	quizGroup.Get("/:id/leaderboard", middleware.Protected(), quizzes.Leaderboard)
	quizGroup.Get("/:id/leaderboard/live", quizzes.LiveLeaderboardUpgrade, websocket.New(quizzes.LiveLeaderboardConnHandler))

	// Announcement routes
	postGroup.Get("/", middleware.Protected(), posts.ListPosts)

	// Admin routes
	adminGroup.Get("/users", admin.ListUsers)
	adminGroup.Post("/users/:user_id/grant-access", admin.GrantAccess)
	adminGroup.Post("/users/:user_id/revoke-access", admin.RevokeAccess)
	adminGroup.Get("/access-settings", admin.GetAccessSettings)
	adminGroup.Put("/access-settings", admin.UpdateAccessSettings)
	adminGroup.Put("/career-tip", admin.UpdateCareerTip)
	adminGroup.Post("/materials", materials.CreateMaterial)
	adminGroup.Put("/materials/:id", materials.UpdateMaterial)
	adminGroup.Delete("/materials/:id", materials.DeleteMaterial)
	adminGroup.Post("/quizzes", quizzes.CreateQuiz)
	adminGroup.Put("/quizzes/:id", quizzes.UpdateQuiz)
	adminGroup.Delete("/quizzes/:id", quizzes.DeleteQuiz)
	adminGroup.Post("/posts", posts.CreatePost)
	adminGroup.Put("/posts/:id", posts.UpdatePost)
	adminGroup.Delete("/posts/:id", posts.DeletePost)
}
