package routes

import (
	"net/http"
	"strings"

	"github.com/mementoapp/memento/internal/app"
	"github.com/mementoapp/memento/internal/handler"
	"github.com/mementoapp/memento/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Cfg.AppName)
	health := handler.NewHealthHandler(app.HealthService)
	auth := handler.NewAuthHandler(app.AuthService)
	albums := handler.NewAlbumHandler(app.AlbumService)
	images := handler.NewImageHandler(app.ImageService)
	audio := handler.NewAudioHandler(app.AudioService)
	upload := handler.NewUploadHandler(app.UploadService)

	mux := http.NewServeMux()

	// Methods served per path, for 405 responses
	var paths []string
	methods := map[string][]string{}
	track := func(pattern string) {
		method, path, _ := strings.Cut(pattern, " ")
		if _, ok := methods[path]; !ok {
			paths = append(paths, path)
		}
		methods[path] = append(methods[path], method)
	}

	// Every route is instrumented under its own pattern
	handle := func(pattern string, h http.HandlerFunc) {
		track(pattern)
		mux.HandleFunc(pattern, middleware.Instrument(pattern, h))
	}
	protected := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAuth(h))
	}

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	handle("GET /{$}", home.Root)
	handle("GET /health", health.Health)

	if app.Cfg.MetricsEnabled {
		track("GET /metrics")
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Auth (rate limited per client IP)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	handle("POST /auth/register", rateLimiter(auth.Register))
	handle("POST /auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (bearer token)
	// ============================================================================

	protected("GET /auth/me", auth.Me)

	// Albums
	protected("POST /albums", albums.Create)
	protected("GET /albums", albums.List)
	protected("GET /albums/{id}", albums.Get)
	protected("PUT /albums/{id}", albums.Update)
	protected("DELETE /albums/{id}", albums.Delete)

	// Album members
	protected("GET /albums/{id}/members", albums.Members)
	protected("POST /albums/{id}/members", albums.AddMember)
	protected("DELETE /albums/{id}/members/{user_id}", albums.RemoveMember)

	// Images
	protected("POST /images", images.Create)
	protected("GET /images/{id}", images.Get)
	protected("PUT /images/{id}", images.Update)
	protected("DELETE /images/{id}", images.Delete)
	protected("GET /images/album/{album_id}", images.AlbumImages)

	// Audio
	protected("POST /audio", audio.Create)
	protected("GET /audio/{id}", audio.Get)
	protected("PUT /audio/{id}", audio.Update)
	protected("DELETE /audio/{id}", audio.Delete)
	protected("GET /audio/image/{image_id}", audio.ByImage)

	// Direct-upload signatures
	protected("GET /upload/signature/image", upload.ImageSignature)
	protected("GET /upload/signature/audio", upload.AudioSignature)

	// Known path, wrong method
	for _, path := range paths {
		mux.HandleFunc(path, home.MethodNotAllowed(methods[path]))
	}

	// Catch-all for 404
	mux.HandleFunc("/", home.NotFound)

	// Apply global middleware
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(app.AuthService),
	)
}
