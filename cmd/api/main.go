package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "wezacredit-backend/internal/adapter/http"
	"wezacredit-backend/internal/adapter/middleware"
	"wezacredit-backend/internal/adapter/repository/mysql"
	"wezacredit-backend/internal/config"
	"wezacredit-backend/internal/infrastructure/cache"
	"wezacredit-backend/internal/infrastructure/db"
	ucApplication "wezacredit-backend/internal/usecase/application"
	ucDecision "wezacredit-backend/internal/usecase/decision"
	ucProfile "wezacredit-backend/internal/usecase/profile"
	ucRepayment "wezacredit-backend/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories + unit of work
	apps := mysql.NewApplicationRepository(gdb)
	profiles := mysql.NewProfileRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	applicationUC := ucApplication.NewUsecase(apps, tx, cfg.DefaultAnnualRatePercent)
	decisionUC := ucDecision.NewUsecase(apps, tx)
	repaymentUC := ucRepayment.NewUsecase(tx)
	profileUC := ucProfile.NewUsecase(profiles)

	// handlers
	h := httpadp.NewHandler()
	applicationH := httpadp.NewApplicationHandler(applicationUC)
	adminH := httpadp.NewAdminHandler(decisionUC)
	paymentH := httpadp.NewPaymentHandler(repaymentUC)
	profileH := httpadp.NewProfileHandler(profileUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	actor := middleware.Actor(profiles)

	// routes
	e.GET("/health", h.Health)

	// borrower surface
	e.POST("/applications", applicationH.SubmitApplication, actor, idemp)
	e.GET("/applications", applicationH.ListApplications, actor)
	e.GET("/applications/quote", applicationH.Quote)
	e.GET("/applications/:application_id", applicationH.GetApplication, actor)

	e.GET("/me", profileH.GetMe, actor)
	e.PUT("/me", profileH.UpsertMe, actor)

	// collaborator webhooks (no actor; callers authenticate at the gateway)
	e.POST("/applications/:application_id/score", applicationH.ScoreWebhook)
	e.POST("/loans/:loan_id/payments", paymentH.RecordPayment)

	// administration
	admin := e.Group("/admin", actor, middleware.RequireDecider())
	admin.GET("/applications", adminH.ListApplications)
	admin.GET("/stats", adminH.DashboardStats)
	admin.POST("/applications/:application_id/review", adminH.StartReview, idemp)
	admin.POST("/applications/:application_id/approve", adminH.Approve, idemp)
	admin.POST("/applications/:application_id/reject", adminH.Reject, idemp)
	admin.POST("/applications/:application_id/disburse", adminH.Disburse, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
