package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuslink-dev/campuslink/internal/config"
	"github.com/campuslink-dev/campuslink/internal/handler"
	"github.com/campuslink-dev/campuslink/internal/jwt"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	rl "github.com/campuslink-dev/campuslink/internal/ratelimiter"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

// New creates and configures a new mux router with all the routes.
func New(h *handler.Handler, jwtService jwt.JwtService, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for browser clients
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(cfg.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	// Backend CSP: strict policy (JSON API only, no scripts/styles needed)
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(cfg.Public.SecureCookies, backendCSP))

	r.Use(mw.Metrics)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	needAuth := mw.NeedAuth(jwtService)

	// Register and login are limited by IP to slow down abuse,
	// message sending per user.
	registerLimit := mw.RateLimit(rl.New(1.0/10, 3, 1*time.Hour), utils.GetIP)
	loginLimit := mw.RateLimit(rl.OnceInSecond(), utils.GetIP)
	authGlobalLimit := mw.GlobalRateLimit(rl.Rps100())
	messageLimit := mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDFromContext)
	postCreateLimit := mw.RateLimit(rl.OnceInMinute(), mw.GetUserIDFromContext)
	listLimit := mw.RateLimit(rl.Rps10(), mw.GetUserIDFromContext)
	userLimit := mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/auth/register", authGlobalLimit(registerLimit(h.Register))).Methods("POST")
	v1.HandleFunc("/auth/login", authGlobalLimit(loginLimit(h.Login))).Methods("POST")
	v1.HandleFunc("/auth/logout", needAuth(h.Logout)).Methods("POST")

	v1.HandleFunc("/posts", needAuth(listLimit(h.GetPosts))).Methods("GET")
	v1.HandleFunc("/posts", needAuth(postCreateLimit(h.CreatePost))).Methods("POST")
	v1.HandleFunc("/posts/{post}", needAuth(userLimit(h.GetPost))).Methods("GET")

	v1.HandleFunc("/posts/{post}/applications", needAuth(userLimit(h.CreateApplication))).Methods("POST")
	v1.HandleFunc("/posts/{post}/applications", needAuth(userLimit(h.GetPostApplications))).Methods("GET")
	v1.HandleFunc("/posts/{post}/applications/stats", needAuth(userLimit(h.GetPostApplicationStats))).Methods("GET")
	v1.HandleFunc("/applications", needAuth(userLimit(h.GetMyApplications))).Methods("GET")
	v1.HandleFunc("/applications/{application}/status", needAuth(userLimit(h.UpdateApplicationStatus))).Methods("PATCH")
	v1.HandleFunc("/applications/{application}/withdraw", needAuth(userLimit(h.WithdrawApplication))).Methods("POST")

	v1.HandleFunc("/posts/{post}/invitations", needAuth(userLimit(h.CreateInvitation))).Methods("POST")
	v1.HandleFunc("/posts/{post}/invitations", needAuth(userLimit(h.GetPostInvitations))).Methods("GET")
	v1.HandleFunc("/invitations", needAuth(userLimit(h.GetMyInvitations))).Methods("GET")
	v1.HandleFunc("/invitations/{invitation}/seen", needAuth(userLimit(h.MarkInvitationSeen))).Methods("POST")
	v1.HandleFunc("/invitations/{invitation}/respond", needAuth(userLimit(h.RespondInvitation))).Methods("POST")
	v1.HandleFunc("/invitations/{invitation}/cancel", needAuth(userLimit(h.CancelInvitation))).Methods("POST")

	v1.HandleFunc("/chatrooms", needAuth(userLimit(h.GetMyChatrooms))).Methods("GET")
	v1.HandleFunc("/chatrooms/{chatroom}", needAuth(userLimit(h.GetChatroom))).Methods("GET")
	v1.HandleFunc("/chatrooms/{chatroom}/messages", needAuth(messageLimit(h.SendMessage))).Methods("POST")
	v1.HandleFunc("/chatrooms/{chatroom}/read", needAuth(userLimit(h.MarkChatroomRead))).Methods("POST")

	v1.HandleFunc("/notifications", needAuth(userLimit(h.GetMyNotifications))).Methods("GET")
	v1.HandleFunc("/notifications/unread_count", needAuth(userLimit(h.GetUnreadCount))).Methods("GET")
	v1.HandleFunc("/notifications/{notification}/read", needAuth(userLimit(h.MarkNotificationRead))).Methods("POST")
	v1.HandleFunc("/notifications/read_all", needAuth(userLimit(h.MarkAllNotificationsRead))).Methods("POST")

	v1.HandleFunc("/lifecycle/stats", mw.FacultyOnly(jwtService)(h.GetSweepStats)).Methods("GET")

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
