package main

import (
	"log"
	"net/http"
	"os"

	"github.com/ailo-learn/backend/internal/ai"
	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/community"
	"github.com/ailo-learn/backend/internal/content"
	"github.com/ailo-learn/backend/internal/database"
	"github.com/ailo-learn/backend/internal/feedback"
	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/middleware"
	"github.com/ailo-learn/backend/internal/parent"
	"github.com/ailo-learn/backend/internal/privacy"
	"github.com/ailo-learn/backend/internal/progress"
	"github.com/ailo-learn/backend/internal/quiz"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services and handlers
	aiClient := ai.NewClient()

	gamStore := gamification.NewStore(db)
	gamService := gamification.NewService(gamStore)

	authHandler := auth.NewHandler(db)
	contentHandler := content.NewHandler(content.NewStore(db))
	progressHandler := progress.NewHandler(progress.NewService(progress.NewStore(db), gamService))

	quizService := quiz.NewService(quiz.NewStore(db), gamService, aiClient)
	quizHandler := quiz.NewHandler(quizService)

	communityHandler := community.NewHandler(community.NewStore(db), gamStore)
	parentHandler := parent.NewHandler(parent.NewStore(db), gamStore, aiClient, db)
	feedbackHandler := feedback.NewHandler(db)
	privacyHandler := privacy.NewHandler(db)
	aiHandler := ai.NewHandler(aiClient, db, gamStore, quizService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/verify-otp", authHandler.VerifyOTP).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/onboarding/quiz", authHandler.SubmitOnboardingQuiz).Methods("POST")
	protected.HandleFunc("/onboarding/goal", authHandler.SetGoal).Methods("POST")

	protected.HandleFunc("/chapters", contentHandler.GetChapters).Methods("GET")
	protected.HandleFunc("/chapters/{chapter_id}/topics", contentHandler.GetChapterTopics).Methods("GET")
	protected.HandleFunc("/topics/{topic_id}/subtopics", contentHandler.GetTopicSubtopics).Methods("GET")
	protected.HandleFunc("/subtopics/{subtopic_id}/microcontent", contentHandler.GetSubtopicMicrocontent).Methods("GET")

	protected.HandleFunc("/topics/{topic_id}/progress", progressHandler.UpdateTopicProgress).Methods("POST")
	protected.HandleFunc("/subtopics/{subtopic_id}/progress", progressHandler.UpdateSubtopicProgress).Methods("POST")

	// Subtopic-grained quiz surface
	protected.HandleFunc("/subtopics/{subtopic_id}/quiz", quizHandler.GetSubtopicQuiz).Methods("GET")
	protected.HandleFunc("/quiz/submit", quizHandler.SubmitQuiz).Methods("POST")

	// Chapter-grained quiz surface, kept alongside the one above
	protected.HandleFunc("/quizzes/daily-challenge", quizHandler.GetDailyChallenge).Methods("GET")
	protected.HandleFunc("/quizzes/chapter/{chapter_id}", quizHandler.GetChapterQuiz).Methods("GET")
	protected.HandleFunc("/quizzes/submit", quizHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/quizzes/{quiz_id}/results", quizHandler.GetResults).Methods("GET")

	protected.HandleFunc("/leaderboard", communityHandler.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/groups", communityHandler.CreateGroup).Methods("POST")
	protected.HandleFunc("/groups", communityHandler.ListGroups).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/join", communityHandler.JoinGroup).Methods("POST")
	protected.HandleFunc("/groups/{group_id}/messages", communityHandler.PostMessage).Methods("POST")
	protected.HandleFunc("/groups/{group_id}/messages", communityHandler.GetMessages).Methods("GET")

	protected.HandleFunc("/parent/link", parentHandler.LinkParent).Methods("POST")
	protected.HandleFunc("/parent/children", parentHandler.GetChildren).Methods("GET")
	protected.HandleFunc("/parent/student/{student_id}/dashboard", parentHandler.GetStudentDashboard).Methods("GET")

	protected.HandleFunc("/questions/flag", feedbackHandler.FlagQuestion).Methods("POST")
	protected.HandleFunc("/feedback", feedbackHandler.SubmitFeedback).Methods("POST")

	protected.HandleFunc("/privacy/settings", privacyHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/privacy/settings", privacyHandler.UpdateSettings).Methods("PUT")
	protected.HandleFunc("/privacy/export", privacyHandler.ExportData).Methods("GET")
	protected.HandleFunc("/privacy/delete-account", privacyHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/ai/chat", aiHandler.Chat).Methods("POST")
	protected.HandleFunc("/ai/recommendations", aiHandler.GetRecommendations).Methods("GET")
	protected.HandleFunc("/dashboard/home", aiHandler.GetDashboard).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
