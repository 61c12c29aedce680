package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/config"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/handler"
	"github.com/sangkips/ledger-api/internal/presentation/http/middleware"
	"github.com/sangkips/ledger-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Company     *handler.CompanyHandler
	Catalog     *handler.CatalogHandler
	Contact     *handler.ContactHandler
	Invoice     *handler.InvoiceHandler
	Quote       *handler.QuoteHandler
	PublicQuote *handler.PublicQuoteHandler
	WorkOrder   *handler.WorkOrderHandler
	Tracking    *handler.TrackingHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	CompanyRepo     domainRepo.CompanyRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Router is the configured engine plus the limiters whose cleanup must be stopped on shutdown.
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiter cleanup goroutines
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Close()
	}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *Router {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(config.GetLogger()))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)

	rl := deps.Cfg.RateLimit
	companyLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(rl.Requests, rl.Duration), middleware.ByCompany)
	publicLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(rl.PublicRequests, rl.PublicDuration), middleware.ByClientIP)

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	v1 := router.Group("/api/v1")
	{
		// Public routes, guarded only by the quote's approval token
		public := v1.Group("/public")
		public.Use(publicLimiter.Middleware())
		registerPublicRoutes(public, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.CompanyMiddleware(deps.CompanyRepo))
		protected.Use(companyLimiter.Middleware())

		registerProtectedRoutes(protected, h, idempotency)
	}

	return &Router{
		Engine:   router,
		limiters: []*middleware.RateLimiter{companyLimiter, publicLimiter},
	}
}

func registerPublicRoutes(public *gin.RouterGroup, h *Handlers) {
	quotes := public.Group("/quotes")
	{
		quotes.GET("/:token", h.PublicQuote.Show)
		quotes.POST("/:token/approval", h.PublicQuote.Decide)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	// Company
	protected.GET("/company", h.Company.Get)
	protected.GET("/company/sequences", h.Company.ListSequences)
	protected.PUT("/company/sequences/:type", h.Company.UpdateSequence)

	registerCatalogRoutes(protected, h, idempotency)
	registerInvoiceRoutes(protected, h, idempotency)
	registerQuoteRoutes(protected, h, idempotency)
	registerWorkOrderRoutes(protected, h, idempotency)
	registerTrackingRoutes(protected, h, idempotency)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", idempotency, h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
	}

	projects := protected.Group("/projects")
	{
		projects.GET("", h.Catalog.ListProjects)
		projects.POST("", idempotency, h.Catalog.CreateProject)
		projects.GET("/:id", h.Catalog.GetProject)
	}

	contacts := protected.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.POST("", idempotency, h.Contact.Create)
		contacts.GET("/:id", h.Contact.Get)
		contacts.PUT("/:id", h.Contact.Update)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", idempotency, h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/items", h.Invoice.AddItem)
		invoices.PUT("/:id/items/:index", h.Invoice.UpdateItem)
		invoices.DELETE("/:id/items/:index", h.Invoice.RemoveItem)
		invoices.POST("/:id/validate", h.Invoice.Validate)
		invoices.POST("/:id/revert", h.Invoice.Revert)
		invoices.PUT("/:id/payment", h.Invoice.SetPayment)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", idempotency, h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.POST("/:id/items", h.Quote.AddItem)
		quotes.PUT("/:id/items/:index", h.Quote.UpdateItem)
		quotes.DELETE("/:id/items/:index", h.Quote.RemoveItem)
		quotes.PUT("/:id/status", h.Quote.SetStatus)
		quotes.GET("/:id/approval-link", h.Quote.ApprovalLink)
		quotes.POST("/:id/convert", idempotency, h.Quote.Convert)
	}
}

func registerWorkOrderRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	workOrders := protected.Group("/work-orders")
	{
		workOrders.GET("", h.WorkOrder.List)
		workOrders.POST("", idempotency, h.WorkOrder.Create)
		workOrders.GET("/:id", h.WorkOrder.Get)
		workOrders.PUT("/:id", h.WorkOrder.Update)
		workOrders.DELETE("/:id", h.WorkOrder.Delete)
		workOrders.POST("/:id/items", h.WorkOrder.AddItem)
		workOrders.PUT("/:id/items/:index", h.WorkOrder.UpdateItem)
		workOrders.DELETE("/:id/items/:index", h.WorkOrder.RemoveItem)
		workOrders.PUT("/:id/items/:index/progress", h.WorkOrder.SetProgress)
		workOrders.POST("/:id/finalize", h.WorkOrder.Finalize)
		workOrders.POST("/:id/reopen", h.WorkOrder.Reopen)
	}
}

func registerTrackingRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	trackings := protected.Group("/trackings")
	{
		trackings.GET("", h.Tracking.List)
		trackings.POST("", idempotency, h.Tracking.Create)
		trackings.GET("/:id", h.Tracking.Get)
		trackings.PUT("/:id", h.Tracking.Update)
		trackings.POST("/:id/advance", h.Tracking.Advance)
		trackings.POST("/:id/invoice", idempotency, h.Tracking.Invoice)
	}
}
