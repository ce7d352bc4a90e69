package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campus-market/internal/models"
	"campus-market/internal/service"
	"campus-market/internal/state"
	"campus-market/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	store      *state.Store
	orders     *service.OrderService
	onboarding *service.OnboardingService
	identity   *service.IdentityService
	engagement *service.EngagementService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store *state.Store,
	orders *service.OrderService,
	onboarding *service.OnboardingService,
	identity *service.IdentityService,
	engagement *service.EngagementService,
) *Handler {
	return &Handler{
		store:      store,
		orders:     orders,
		onboarding: onboarding,
		identity:   identity,
		engagement: engagement,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/session", h.login)

		v1.GET("/businesses", h.listBusinesses)
		v1.GET("/businesses/:id", h.getBusiness)
		v1.GET("/businesses/:id/products", h.listBusinessProducts)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/reviews", h.listReviews)

		auth := v1.Group("", h.requireSession)
		{
			auth.GET("/session", h.currentSession)
			auth.DELETE("/session", h.logout)

			auth.GET("/cart", h.getCart)
			auth.POST("/cart/items", h.addToCart)
			auth.PATCH("/cart/items/:productId", h.updateCartItem)
			auth.DELETE("/cart/items/:productId", h.removeCartItem)
			auth.DELETE("/cart", h.clearCart)

			auth.POST("/checkout", h.checkout)
			auth.GET("/orders", h.listOrders)
			auth.GET("/orders/:id", h.getOrder)
			auth.POST("/orders/:id/cancel", h.cancelOrder)

			auth.GET("/favorites", h.listFavorites)
			auth.POST("/favorites/:businessId/toggle", h.toggleFavorite)

			auth.POST("/reviews", h.submitReview)

			auth.GET("/notifications", h.listNotifications)
			auth.POST("/notifications/:id/read", h.markNotificationRead)
			auth.POST("/notifications/read-all", h.markAllNotificationsRead)

			auth.GET("/conversations", h.listConversations)
			auth.POST("/conversations/messages", h.sendMessage)
			auth.POST("/conversations/:id/read", h.markConversationRead)

			auth.GET("/onboarding", h.getOnboarding)
			auth.PUT("/onboarding/type", h.onboardingType)
			auth.PUT("/onboarding/info", h.onboardingInfo)
			auth.PUT("/onboarding/contact", h.onboardingContact)
			auth.POST("/onboarding/commit", h.onboardingCommit)
			auth.DELETE("/onboarding", h.onboardingRestart)

			auth.GET("/vendor/businesses", h.listVendorBusinesses)
			auth.POST("/vendor/businesses/:id/claim", h.claimBusiness)
			auth.GET("/vendor/businesses/:id/orders", h.listVendorOrders)
			auth.GET("/vendor/businesses/:id/products", h.listVendorProducts)
			auth.PATCH("/vendor/orders/:id/status", h.updateVendorOrderStatus)
			auth.POST("/vendor/orders/:id/advance", h.advanceVendorOrder)
			auth.POST("/vendor/products", h.createVendorProduct)
			auth.PATCH("/vendor/products/:id", h.updateVendorProduct)
			auth.DELETE("/vendor/products/:id", h.deleteVendorProduct)
		}
	}
}

// requireSession gates session-scoped routes. Authentication is simulated;
// the gate only ensures an active (simulated) session exists.
func (h *Handler) requireSession(c *gin.Context) {
	if !h.store.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	c.Next()
}

// serviceError maps domain error kinds to HTTP statuses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// LoginRequest carries the simulated login form.
type LoginRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	IndexNumber string `json:"index_number"`
	Programme   string `json:"programme"`
	Year        int    `json:"year"`
	Hall        string `json:"hall"`
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := h.store.Login(models.User{
		Name:        req.Name,
		Email:       req.Email,
		IndexNumber: req.IndexNumber,
		Programme:   req.Programme,
		Year:        req.Year,
		Hall:        req.Hall,
	})
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) currentSession(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}

func (h *Handler) listBusinesses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"businesses": h.store.Businesses()})
}

func (h *Handler) getBusiness(c *gin.Context) {
	business, err := h.identity.ResolveBusiness(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": business})
}

func (h *Handler) listBusinessProducts(c *gin.Context) {
	ids := h.identity.AcceptableIDs(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"products": h.store.ProductsByBusiness(ids...)})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.store.Products()})
}

func (h *Handler) getProduct(c *gin.Context) {
	product, ok := h.store.ProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.store.Cart(),
		"total": h.store.CartTotal(),
	})
}

func (h *Handler) addToCart(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if item.ProductID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_id is required"})
		return
	}
	h.store.AddToCart(item)
	util.CartItemsAddedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"items": h.store.Cart(), "total": h.store.CartTotal()})
}

func (h *Handler) updateCartItem(c *gin.Context) {
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}
	h.store.UpdateCartQuantity(c.Param("productId"), quantity)
	c.JSON(http.StatusOK, gin.H{"items": h.store.Cart(), "total": h.store.CartTotal()})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"items": h.store.Cart(), "total": h.store.CartTotal()})
}

func (h *Handler) clearCart(c *gin.Context) {
	h.store.ClearCart()
	c.Status(http.StatusNoContent)
}

func (h *Handler) checkout(c *gin.Context) {
	var req service.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) listOrders(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"orders": h.store.Orders(user.ID)})
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) cancelOrder(c *gin.Context) {
	if err := h.orders.CancelBuyerOrder(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	order, err := h.orders.GetOrder(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": h.store.Favorites()})
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	businessID := c.Param("businessId")
	business, ok := h.store.BusinessByID(businessID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	added := h.store.ToggleFavorite(business)
	c.JSON(http.StatusOK, gin.H{"favorited": added})
}

func (h *Handler) submitReview(c *gin.Context) {
	var req service.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	review, err := h.engagement.SubmitReview(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *Handler) listReviews(c *gin.Context) {
	if productID := c.Query("product_id"); productID != "" {
		c.JSON(http.StatusOK, gin.H{"reviews": h.store.ReviewsForProduct(productID)})
		return
	}
	if businessID := c.Query("business_id"); businessID != "" {
		c.JSON(http.StatusOK, gin.H{"reviews": h.store.ReviewsForBusiness(businessID)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "product_id or business_id is required"})
}

func (h *Handler) listNotifications(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.store.Notifications(user.ID),
		"unread":        h.store.UnreadNotifications(user.ID),
	})
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	h.store.MarkNotificationRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	h.store.MarkAllNotificationsRead(user.ID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) listConversations(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"conversations": h.store.Conversations(user.ID)})
}

// SendMessageRequest carries one chat message.
type SendMessageRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
	BuyerID    string `json:"buyer_id"`
	SenderType string `json:"sender_type" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	buyerID := req.BuyerID
	if buyerID == "" {
		user, _ := h.store.CurrentUser()
		buyerID = user.ID
	}

	conv, err := h.engagement.SendMessage(req.BusinessID, buyerID, req.SenderType, req.Text)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conversation": conv})
}

func (h *Handler) markConversationRead(c *gin.Context) {
	h.engagement.MarkConversationRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) getOnboarding(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"draft": h.onboarding.Draft()})
}

func (h *Handler) onboardingType(c *gin.Context) {
	var req struct {
		BusinessType string `json:"business_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.onboarding.SetBusinessType(req.BusinessType); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": h.onboarding.Draft()})
}

func (h *Handler) onboardingInfo(c *gin.Context) {
	var info models.OnboardingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.onboarding.SetBusinessInfo(info); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": h.onboarding.Draft()})
}

// OnboardingContactRequest carries the contact step of the wizard.
type OnboardingContactRequest struct {
	Contact  models.ContactInfo     `json:"contact" binding:"required"`
	Delivery models.DeliveryOptions `json:"delivery"`
}

func (h *Handler) onboardingContact(c *gin.Context) {
	var req OnboardingContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.onboarding.SetContact(req.Contact, req.Delivery); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": h.onboarding.Draft()})
}

func (h *Handler) onboardingCommit(c *gin.Context) {
	business, err := h.onboarding.Commit(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"business": business})
}

func (h *Handler) onboardingRestart(c *gin.Context) {
	h.onboarding.Restart()
	c.Status(http.StatusNoContent)
}

func (h *Handler) listVendorBusinesses(c *gin.Context) {
	user, _ := h.store.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"businesses": h.store.VendorBusinesses(user.ID)})
}

func (h *Handler) claimBusiness(c *gin.Context) {
	var req struct {
		MarketplaceID string `json:"marketplace_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.identity.ClaimBusiness(c.Param("id"), req.MarketplaceID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listVendorOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orders.VendorOrdersFor(c.Param("id"))})
}

func (h *Handler) listVendorProducts(c *gin.Context) {
	ids := h.identity.AcceptableIDs(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"products": h.store.ProductsByBusiness(ids...)})
}

func (h *Handler) updateVendorOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.UpdateVendorOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) advanceVendorOrder(c *gin.Context) {
	order, err := h.orders.AdvanceVendorOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// VendorProductRequest carries the manage-products form.
type VendorProductRequest struct {
	BusinessID  string                `json:"business_id" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Price       int64                 `json:"price" binding:"required"`
	Images      []string              `json:"images"`
	Category    string                `json:"category"`
	Stock       int                   `json:"stock"`
	Options     models.ProductOptions `json:"options"`
}

func (h *Handler) createVendorProduct(c *gin.Context) {
	var req VendorProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if _, ok := h.store.VendorBusinessByID(req.BusinessID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor business not found"})
		return
	}

	ts := time.Now().UTC()
	product := models.Product{
		ID:          uuid.New().String(),
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		Options:     req.Options,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	h.store.AddVendorProduct(product)
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) updateVendorProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product.ID = c.Param("id")
	product.UpdatedAt = time.Now().UTC()
	h.store.UpdateVendorProduct(product)
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) deleteVendorProduct(c *gin.Context) {
	h.store.RemoveVendorProduct(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
