package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	amqp "github.com/streadway/amqp"

	"simak/internal/handlers"
	"simak/internal/middleware"
	"simak/internal/services"
	"simak/internal/storage"
	"simak/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATA_FILE", "students.json")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("USER_PASSWORD", "user123")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dataFile := viper.GetString("DATA_FILE")

	// --- Initialize RabbitMQ Client (optional) ---
	// With no broker URL configured the publisher stays nil and record
	// change events are simply not emitted.
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, record change events disabled")
	}

	// --- Initialize Store ---
	store, err := storage.New(dataFile)
	if err != nil {
		log.Fatalf("Failed to load student data from %s: %v", dataFile, err)
	}
	log.Printf("Loaded %d student records from %s", store.Count(), dataFile)

	// --- Initialize Services ---
	studentService := services.NewStudentService(store, mqClient)
	reportService := services.NewReportService()
	mailService := services.NewMailService(
		viper.GetString("SMTP_HOST"),
		viper.GetInt("SMTP_PORT"),
		viper.GetString("EMAIL_SENDER"),
		viper.GetString("EMAIL_APP_PASSWORD"),
	)
	authService, err := services.NewAuthService(
		viper.GetString("ADMIN_PASSWORD"),
		viper.GetString("USER_PASSWORD"),
		viper.GetString("JWT_SECRET"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(studentService)
	reportHandler := handlers.NewReportHandler(studentService, reportService, mailService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Everything else requires a session token
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	studentHandler.RegisterRoutes(protected)
	reportHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"students": store.Count(),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// A simple audit consumer that logs every record change event.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for student events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received student event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeStudentEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
