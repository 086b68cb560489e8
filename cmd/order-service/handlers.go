package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/cart"
	"github.com/evstore/storefront/internal/httpx"
	"github.com/evstore/storefront/internal/order"
)

func registerRoutes(r *gin.Engine, carts *cart.Service, orders *order.Service) {
	r.GET("/carts/user/:user_id", getUserCartHandler(carts))
	r.GET("/carts/:id", getCartHandler(carts))
	r.POST("/carts/:id/items", addCartItemHandler(carts))
	r.DELETE("/carts/:id/items", clearCartHandler(carts))
	r.PUT("/cart-items/:id", updateCartItemHandler(carts))
	r.DELETE("/cart-items/:id", removeCartItemHandler(carts))

	r.POST("/orders", createOrderHandler(orders))
	r.GET("/orders/:id", getOrderHandler(orders))
	r.GET("/orders/:id/items", getOrderItemsHandler(orders))
	r.GET("/orders/number/:number", getOrderByNumberHandler(orders))
	r.GET("/orders/user/:user_id", listOrdersByUserHandler(orders))
	r.PUT("/orders/:id/status", updateOrderStatusHandler(orders))
	r.PUT("/orders/:id/notes", updateOrderNotesHandler(orders))
}

// getUserCartHandler godoc
// @Summary      Cart of a user
// @Description  Returns the user's cart, creating an empty one on first use.
// @Tags         carts
// @Produce      json
// @Param        user_id  path  string  true  "User ID (UUID)"
// @Success      200  {object}  cart.Cart
// @Failure      400  {object}  httpx.HTTPError
// @Router       /carts/user/{user_id} [get]
func getUserCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := httpx.ParamUUID(c, "user_id")
		if !ok {
			return
		}
		sc, err := carts.ForUser(c.Request.Context(), userID)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, sc)
	}
}

// getCartHandler godoc
// @Summary      Get cart
// @Tags         carts
// @Produce      json
// @Param        id   path  string  true  "Cart ID (UUID)"
// @Success      200  {object}  cart.Cart
// @Failure      404  {object}  httpx.HTTPError
// @Router       /carts/{id} [get]
func getCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		sc, err := carts.Get(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, sc)
	}
}

// addCartItemHandler godoc
// @Summary      Add vehicle to cart
// @Description  Adds quantity to the existing line of the vehicle or creates it.
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Cart ID (UUID)"
// @Param        body  body  cart.AddItemRequest  true  "Vehicle and quantity"
// @Success      201  {object}  cart.Item
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /carts/{id}/items [post]
func addCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req cart.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		vehicleID, err := uuid.Parse(req.VehicleID)
		if err != nil {
			httpx.WriteError(c, apperr.Invalid("vehicle_id", "must be a UUID"))
			return
		}
		qty := cart.DefaultQuantity
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		it, err := carts.AddItem(c.Request.Context(), cartID, vehicleID, qty)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

// updateCartItemHandler godoc
// @Summary      Set item quantity
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Cart item ID (UUID)"
// @Param        body  body  cart.UpdateQuantityRequest  true  "New quantity"
// @Success      200  {object}  cart.Item
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /cart-items/{id} [put]
func updateCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req cart.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		it, err := carts.UpdateQuantity(c.Request.Context(), itemID, req.Quantity)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// removeCartItemHandler godoc
// @Summary      Remove item
// @Description  Idempotent: removing a missing item also returns 204.
// @Tags         carts
// @Param        id  path  string  true  "Cart item ID (UUID)"
// @Success      204
// @Router       /cart-items/{id} [delete]
func removeCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		if err := carts.RemoveItem(c.Request.Context(), itemID); err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// clearCartHandler godoc
// @Summary      Empty cart
// @Tags         carts
// @Param        id  path  string  true  "Cart ID (UUID)"
// @Success      204
// @Router       /carts/{id}/items [delete]
func clearCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		if err := carts.Clear(c.Request.Context(), cartID); err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// createOrderHandler godoc
// @Summary      Checkout
// @Description  Turns the cart into a pending order priced from the catalog and empties the cart, atomically.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  order.CreateOrderRequest  true  "Checkout data"
// @Success      201  {object}  order.PurchaseOrder
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Failure      409  {object}  httpx.HTTPError
// @Failure      422  {object}  httpx.HTTPError
// @Failure      503  {object}  httpx.HTTPError
// @Router       /orders [post]
func createOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			httpx.WriteError(c, apperr.Invalid("user_id", "must be a UUID"))
			return
		}
		cartID, err := uuid.Parse(req.CartID)
		if err != nil {
			httpx.WriteError(c, apperr.Invalid("cart_id", "must be a UUID"))
			return
		}
		o, err := orders.CreateOrder(c.Request.Context(), userID, cartID, req.Billing, req.Shipping, req.Payment)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "Order ID (UUID)"
// @Success      200  {object}  order.PurchaseOrder
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id} [get]
func getOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		o, err := orders.Get(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// getOrderItemsHandler godoc
// @Summary      Items of an order
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "Order ID (UUID)"
// @Success      200  {array}  order.OrderItem
// @Router       /orders/{id}/items [get]
func getOrderItemsHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		items, err := orders.Items(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// getOrderByNumberHandler godoc
// @Summary      Find order by number
// @Tags         orders
// @Produce      json
// @Param        number  path  string  true  "Order number"  example(EV-20260314-9F86D081)
// @Success      200  {object}  order.PurchaseOrder
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/number/{number} [get]
func getOrderByNumberHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.GetByNumber(c.Request.Context(), c.Param("number"))
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// listOrdersByUserHandler godoc
// @Summary      Orders of a user
// @Description  Newest first.
// @Tags         orders
// @Produce      json
// @Param        user_id  path   string  true   "User ID (UUID)"
// @Param        limit    query  int     false  "Page size (1..100)"  default(20)
// @Param        offset   query  int     false  "Offset"              default(0)
// @Success      200  {object}  order.ListResponse
// @Router       /orders/user/{user_id} [get]
func listOrdersByUserHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := httpx.ParamUUID(c, "user_id")
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		if offset < 0 {
			offset = 0
		}
		list, err := orders.ListByUser(c.Request.Context(), userID, limit, offset)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Limit: limit, Offset: offset, Items: list})
	}
}

// updateOrderStatusHandler godoc
// @Summary      Change order status
// @Description  pending -> processing -> confirmed -> shipped -> delivered; cancel from pending or processing; refund from delivered.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Order ID (UUID)"
// @Param        body  body  order.UpdateStatusRequest  true  "Target status"
// @Success      200  {object}  order.PurchaseOrder
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Failure      409  {object}  httpx.HTTPError
// @Router       /orders/{id}/status [put]
func updateOrderStatusHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		to, err := order.ParseStatus(req.Status)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		o, err := orders.UpdateStatus(c.Request.Context(), id, to)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderNotesHandler godoc
// @Summary      Set admin notes
// @Description  An empty string clears the notes.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Order ID (UUID)"
// @Param        body  body  order.AdminNotesRequest  true  "Notes"
// @Success      200  {object}  order.PurchaseOrder
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id}/notes [put]
func updateOrderNotesHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req order.AdminNotesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		o, err := orders.SetAdminNotes(c.Request.Context(), id, req.Notes)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
