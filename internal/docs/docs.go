// Package docs holds the OpenAPI document of the order service, in the format
// produced by swag from the handler annotations in cmd/order-service.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/carts/user/{user_id}": {
            "get": {
                "description": "Returns the user's cart, creating an empty one on first use.",
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Cart of a user",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID)", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/carts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Get cart",
                "parameters": [
                    {"type": "string", "description": "Cart ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/carts/{id}/items": {
            "post": {
                "description": "Adds quantity to the existing line of the vehicle or creates it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Add vehicle to cart",
                "parameters": [
                    {"type": "string", "description": "Cart ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Vehicle and quantity", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.AddItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cart.Item"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "tags": ["carts"],
                "summary": "Empty cart",
                "parameters": [
                    {"type": "string", "description": "Cart ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cart-items/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Set item quantity",
                "parameters": [
                    {"type": "string", "description": "Cart item ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "New quantity", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.UpdateQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Item"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "description": "Idempotent: removing a missing item also returns 204.",
                "tags": ["carts"],
                "summary": "Remove item",
                "parameters": [
                    {"type": "string", "description": "Cart item ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/orders": {
            "post": {
                "description": "Turns the cart into a pending order priced from the catalog and empties the cart, atomically.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Checkout",
                "parameters": [
                    {"description": "Checkout data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.PurchaseOrder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/number/{number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Find order by number",
                "parameters": [
                    {"type": "string", "example": "EV-20260314-9F86D081", "description": "Order number", "name": "number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.PurchaseOrder"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/user/{user_id}": {
            "get": {
                "description": "Newest first.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Orders of a user",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID)", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "default": 20, "description": "Page size (1..100)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.ListResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get order",
                "parameters": [
                    {"type": "string", "description": "Order ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.PurchaseOrder"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/{id}/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Items of an order",
                "parameters": [
                    {"type": "string", "description": "Order ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.OrderItem"}}}
                }
            }
        },
        "/orders/{id}/notes": {
            "put": {
                "description": "An empty string clears the notes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Set admin notes",
                "parameters": [
                    {"type": "string", "description": "Order ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.AdminNotesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.PurchaseOrder"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/{id}/status": {
            "put": {
                "description": "pending -> processing -> confirmed -> shipped -> delivered; cancel from pending or processing; refund from delivered.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change order status",
                "parameters": [
                    {"type": "string", "description": "Order ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Target status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.PurchaseOrder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "cart.AddItemRequest": {
            "type": "object",
            "properties": {
                "quantity": {"description": "defaults to 1 when omitted", "type": "integer", "minimum": 1, "maximum": 1000, "example": 1},
                "vehicle_id": {"type": "string", "example": "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"}
            }
        },
        "cart.Cart": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.Item"}},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "cart.Item": {
            "type": "object",
            "properties": {
                "cart_id": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "quantity": {"type": "integer"},
                "updated_at": {"type": "string"},
                "vehicle_id": {"type": "string"}
            }
        },
        "cart.UpdateQuantityRequest": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer", "minimum": 1, "maximum": 1000, "example": 2}
            }
        },
        "httpx.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"description": "Error message", "type": "string", "example": "cart item not found"},
                "kind": {"description": "Error kind, stable across releases", "type": "string", "example": "not_found"}
            }
        },
        "order.AdminNotesRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string", "example": "customer asked for delivery after 5pm"}
            }
        },
        "order.BillingInfo": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "12 Volt St"},
                "city": {"type": "string", "example": "Austin"},
                "country": {"type": "string", "example": "US"},
                "email": {"type": "string", "example": "ada@example.com"},
                "first_name": {"type": "string", "example": "Ada"},
                "last_name": {"type": "string", "example": "Lovelace"},
                "phone": {"type": "string", "example": "+1 555 0100"},
                "state": {"type": "string", "example": "TX"},
                "zip_code": {"type": "string", "example": "73301"}
            }
        },
        "order.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "billing": {"$ref": "#/definitions/order.BillingInfo"},
                "cart_id": {"type": "string", "example": "0d8f0a57-4c1b-4d84-9a3e-2f1f6f3f1c2d"},
                "payment": {"$ref": "#/definitions/order.PaymentInfo"},
                "shipping": {"$ref": "#/definitions/order.ShippingInfo"},
                "user_id": {"type": "string", "example": "b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"}
            }
        },
        "order.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.PurchaseOrder"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "order.OrderItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order_id": {"type": "string"},
                "quantity": {"type": "integer"},
                "total_price": {"type": "string"},
                "unit_price": {"type": "string"},
                "vehicle_brand": {"type": "string"},
                "vehicle_id": {"type": "string"},
                "vehicle_model": {"type": "string"},
                "vehicle_year": {"type": "integer"}
            }
        },
        "order.PaymentInfo": {
            "type": "object",
            "properties": {
                "card_last_four": {"type": "string", "example": "4242"},
                "card_type": {"type": "string", "example": "visa"}
            }
        },
        "order.PurchaseOrder": {
            "type": "object",
            "properties": {
                "admin_notes": {"type": "string"},
                "billing": {"$ref": "#/definitions/order.BillingInfo"},
                "card_last_four": {"type": "string"},
                "card_type": {"type": "string"},
                "created_at": {"type": "string"},
                "delivered_at": {"type": "string"},
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.OrderItem"}},
                "order_number": {"type": "string"},
                "processed_at": {"type": "string"},
                "shipped_at": {"type": "string"},
                "shipping": {"$ref": "#/definitions/order.ShippingInfo"},
                "status": {"type": "string", "enum": ["pending", "processing", "confirmed", "shipped", "delivered", "cancelled", "refunded"]},
                "subtotal": {"type": "string"},
                "tax_amount": {"type": "string"},
                "total_amount": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "order.ShippingInfo": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone": {"type": "string"},
                "state": {"type": "string"},
                "zip_code": {"type": "string"}
            }
        },
        "order.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "processing"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EV Storefront Order Service",
	Description:      "Shopping carts and purchase orders for the EV storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
