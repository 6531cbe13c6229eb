package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"dailyQuestAPI/handlers"
	"dailyQuestAPI/internal/blob"
	"dailyQuestAPI/internal/clock"
	"dailyQuestAPI/internal/identity"
	"dailyQuestAPI/internal/store"
	"dailyQuestAPI/middleware"
	"dailyQuestAPI/services"
)

var (
	firestoreClient   *firestore.Client
	userService       *services.UserService
	feedService       *services.FeedService
	submissionService *services.SubmissionService
	voteService       *services.VoteService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	bucketName := os.Getenv("STORAGE_BUCKET")
	if bucketName == "" {
		log.Fatal("STORAGE_BUCKET environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := newFirebaseApp(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firebase app:", err)
	}

	firestoreClient, err = app.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	log.Println("Successfully connected to Firestore")

	blobStore, err := blob.New(ctx, app, bucketName)
	if err != nil {
		log.Fatal("Failed to open storage bucket:", err)
	}

	loc := time.UTC
	if tz := os.Getenv("TIME_ZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			log.Fatal("Invalid TIME_ZONE:", err)
		}
	}
	clk := clock.New(loc)
	log.Printf("Daily window timezone: %s", loc)

	questStore := store.NewQuestStore(firestoreClient)
	submissionStore := store.NewSubmissionStore(firestoreClient)
	userStore := store.NewUserStore(firestoreClient)
	resolver := identity.NewClerkResolver()

	userService = services.NewUserService(userStore)
	feedService = services.NewFeedService(questStore, submissionStore, userStore, resolver, clk)
	submissionService = services.NewSubmissionService(submissionStore, userStore, blobStore)
	voteService = services.NewVoteService(submissionStore, userStore)

	middleware.InitPrometheus()
}

// newFirebaseApp prefers base64 credentials from the environment so the
// service can deploy without a key file on disk; a local service account
// file is the fallback for development.
func newFirebaseApp(ctx context.Context) (*firebase.App, error) {
	var opts []option.ClientOption

	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Fatal("Failed to decode FIREBASE_SERVICE_ACCOUNT_JSON:", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
		log.Println("Firebase: initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable")
	} else if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
		log.Printf("Firebase: initializing from credentials file %s", path)
	}

	return firebase.NewApp(ctx, nil, opts...)
}

func main() {
	defer func() {
		log.Println("Closing Firestore client...")
		firestoreClient.Close()
	}()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	questHandler := handlers.NewQuestHandler(feedService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, feedService)
	voteHandler := handlers.NewVoteHandler(voteService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "daily-quest-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.OptionalAuthMiddleware)

	api.HandleFunc("/quest/today", questHandler.GetTodaysQuest).Methods("GET")
	api.HandleFunc("/feed/today", questHandler.GetTodaysFeed).Methods("GET")
	api.HandleFunc("/leaderboard/votes", questHandler.GetVotesLeaderboard).Methods("GET")
	api.HandleFunc("/leaderboard/streak", questHandler.GetStreakLeaderboard).Methods("GET")

	api.HandleFunc("/user", userHandler.GetUserData).Methods("GET")
	api.HandleFunc("/user", userHandler.CreateUser).Methods("POST")
	api.HandleFunc("/user/submissions", submissionHandler.GetUserSubmissionHistory).Methods("GET")
	api.HandleFunc("/user/completed-today", submissionHandler.HasCompletedToday).Methods("GET")

	api.HandleFunc("/submissions", submissionHandler.Submit).Methods("POST")

	api.HandleFunc("/vote/upvote", voteHandler.Upvote).Methods("POST")
	api.HandleFunc("/vote/downvote", voteHandler.Downvote).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
