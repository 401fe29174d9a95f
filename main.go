package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"personel_backend/internals/configs"
	database "personel_backend/internals/databases"
	documentModel "personel_backend/internals/features/documents/model"
	leaveModel "personel_backend/internals/features/leaves/model"
	personnelModel "personel_backend/internals/features/personnel/model"
	regionModel "personel_backend/internals/features/regions/model"
	timesheetModel "personel_backend/internals/features/timesheets/model"
	authModel "personel_backend/internals/features/users/auth/model"
	scheduler "personel_backend/internals/features/users/auth/scheduler"
	userModel "personel_backend/internals/features/users/user/model"
	helper "personel_backend/internals/helpers"
	helperOSS "personel_backend/internals/helpers/oss"
	middlewares "personel_backend/internals/middlewares"
	routes "personel_backend/internals/route"
	"personel_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               12 << 20, // 10MB documents + multipart overhead
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard, in line with statement_timeout on the DB side
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.AutoMigrate(
		&regionModel.RegionModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&timesheetModel.TimesheetMonthModel{},
		&personnelModel.PersonnelModel{},
		&leaveModel.LeaveRequestModel{},
		&documentModel.DocumentTemplateModel{},
	)
	database.WarmUpQueries()

	if configs.GetEnvBool("SEED", false) {
		seeds.RunAllSeeds(database.DB)
	}

	// scheduler once the DB is ready
	cleanup := scheduler.StartBlacklistCleanupScheduler(database.DB)

	// Object storage is optional; without it upload endpoints answer 503.
	var blobs helperOSS.BlobStore
	if oss, err := helperOSS.NewOSSServiceFromEnv(); err != nil {
		log.Printf("[WARN] OSS disabled: %v", err)
	} else {
		blobs = oss
	}

	routes.SetupRoutes(app, database.DB, blobs)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("[INFO] listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-cleanup.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
