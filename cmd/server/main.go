package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kyiku/shape-captcha-go/internal/captcha"
	"github.com/kyiku/shape-captcha-go/internal/config"
	"github.com/kyiku/shape-captcha-go/internal/handler"
	"github.com/kyiku/shape-captcha-go/internal/i18n"
	"github.com/kyiku/shape-captcha-go/internal/layout"
	"github.com/kyiku/shape-captcha-go/internal/middleware"
	"github.com/kyiku/shape-captcha-go/internal/render"
	"github.com/kyiku/shape-captcha-go/internal/shape"
	"github.com/kyiku/shape-captcha-go/internal/storage"
	"github.com/kyiku/shape-captcha-go/internal/store"
)

// S3Adapter adapts AWS S3 client to our interface
type S3Adapter struct {
	client *s3.Client
	bucket string
}

func (a *S3Adapter) GetObject(key string) ([]byte, error) {
	output, err := a.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()
	return io.ReadAll(output.Body)
}

func (a *S3Adapter) PutObject(key string, data []byte) error {
	_, err := a.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	return err
}

func (a *S3Adapter) ListObjects(prefix string) ([]string, error) {
	output, err := a.client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: &a.bucket,
		Prefix: &prefix,
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(output.Contents))
	for _, obj := range output.Contents {
		keys = append(keys, *obj.Key)
	}
	return keys, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Challenge engine
	registry := shape.Default()

	layoutParams := layout.DefaultParams()
	layoutParams.Width = cfg.CanvasWidth
	layoutParams.Height = cfg.CanvasHeight
	layoutParams.ShapeCount = cfg.ShapeCount
	layoutParams.MinSize = float64(cfg.MinShapeSize)
	layoutParams.MaxSize = float64(cfg.MaxShapeSize)
	layoutParams.Margin = float64(cfg.ShapeMargin)
	layoutParams.MaxAttemptsPerShape = cfg.MaxPlacementAttempts

	renderOpts := render.DefaultOptions()
	renderOpts.ScaleFactor = cfg.ScaleFactor
	renderOpts.NoiseLines = cfg.NoiseLines
	renderOpts.PointNoiseDensity = cfg.PointNoiseDensity
	renderer := render.New(registry, renderOpts)

	catalog, err := i18n.Load()
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	var challengeStore store.Store
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		challengeStore, err = store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
	default:
		challengeStore = store.NewMemoryStore()
	}
	defer challengeStore.Close()

	svcOpts := captcha.DefaultOptions()
	svcOpts.Layout = layoutParams
	svcOpts.TTL = time.Duration(cfg.ChallengeTTLSeconds) * time.Second
	svcOpts.MaxLayoutRetries = cfg.MaxLayoutRetries
	service := captcha.NewService(registry, renderer, challengeStore, catalog, nil, svcOpts)

	captchaHandler := handler.NewCaptchaHandler(service)
	captchaHandler.SetDefaultLanguage(cfg.DefaultLanguage)
	healthHandler := handler.NewHealthHandler()

	// Optional S3 image publishing. Without a bucket the API inlines
	// images as data URLs.
	if cfg.S3Bucket != "" && cfg.CloudfrontDomain != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Printf("Warning: failed to load AWS config, images will be inlined: %v", err)
		} else {
			adapter := &S3Adapter{client: s3.NewFromConfig(awsCfg), bucket: cfg.S3Bucket}
			publisher := storage.NewS3Client(adapter, cfg.S3Bucket, cfg.CloudfrontDomain)
			captchaHandler.SetImagePublisher(publisher)
			log.Printf("Publishing challenge images to s3://%s via %s", cfg.S3Bucket, cfg.CloudfrontDomain)
		}
	}

	e := echo.New()

	// Middleware
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			e.Logger.Infof("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))

	// Health check (root level for ALB)
	e.GET("/health", healthHandler.Check)

	// API routes
	api := e.Group("/api")
	api.GET("/health", healthHandler.Check)

	// CAPTCHA endpoints, rate limited per IP
	captchaGroup := api.Group("/captcha", middleware.RateLimitMiddleware(30, time.Minute))
	captchaGroup.POST("/generate", captchaHandler.Generate)
	captchaGroup.POST("/verify", captchaHandler.Verify)

	// Log registered endpoints
	log.Println("Registered endpoints:")
	log.Println("  GET  /health")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/captcha/generate")
	log.Println("  POST /api/captcha/verify")

	// Start server
	log.Printf("Starting server on :%s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
