package main

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Cavista-Hackathon-2025/carepulse/config"
	"github.com/Cavista-Hackathon-2025/carepulse/controllers"
	"github.com/Cavista-Hackathon-2025/carepulse/routes"
	"github.com/Cavista-Hackathon-2025/carepulse/services"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("aws: %v", err)
	}

	var uploader *utils.S3Uploader
	if cfg.S3Bucket != "" {
		uploader = utils.NewS3Uploader(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.CDNBaseURL)
	}
	var mailer *utils.Mailer
	if cfg.SESSender != "" {
		mailer = utils.NewMailer(ses.NewFromConfig(awsCfg), cfg.SESSender)
	}
	var push *services.PushService
	if cfg.SNSPlatformARN != "" {
		push = services.NewPushService(db, sns.NewFromConfig(awsCfg), cfg.SNSPlatformARN)
	}
	rek := services.NewRekognitionService(rekognition.NewFromConfig(awsCfg))

	ai := services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	hub := services.NewRealtimeHub()
	notifier := services.NewNotificationService(db, hub, push, mailer)

	planSvc := services.NewMealPlanService(db, ai)
	scanSvc := services.NewScanService(db, ai, rek, planSvc)
	summarySvc := services.NewSummaryService(db, ai, notifier)

	scheduler, err := services.NewReminderScheduler(db, notifier)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	router := routes.SetupRouter(routes.Controllers{
		Auth:          controllers.NewAuthController(services.NewAuthService(db, cfg.JWTSecret)),
		User:          controllers.NewUserController(services.NewUserService(db, uploader)),
		Scan:          controllers.NewScanController(scanSvc),
		MealPlans:     controllers.NewMealPlanController(planSvc),
		Summaries:     controllers.NewSummaryController(summarySvc),
		Notifications: controllers.NewNotificationController(notifier, push),
		Realtime:      controllers.NewRealtimeController(hub),
		Uploads:       controllers.NewUploadController(uploader),
	}, cfg.JWTSecret, db)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
