// Package docs registers the OpenAPI document served on /docs.
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
        "/registration": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Start registration and mail an activation code",
                "parameters": [
                    {"description": "register", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.registerReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/activation-user": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Confirm the activation code and create the account",
                "parameters": [
                    {"description": "activation", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.activationReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login with email and password",
                "parameters": [
                    {"description": "login", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.loginReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/logout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Drop the session and clear token cookies",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/refresh": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Mint a new token pair from the refresh_token cookie",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user from the session",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Update name or email of the current user",
                "parameters": [
                    {"description": "profile", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.profileReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/social-auth": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Find or create a user from a social identity and log in",
                "parameters": [
                    {"description": "social identity", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.socialReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/google/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Redirect to Google consent",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/google/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Google OAuth callback, logs the user in",
                "parameters": [
                    {"type": "string", "description": "state", "name": "state", "in": "query", "required": true},
                    {"type": "string", "description": "authorization code", "name": "code", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/update-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Change the current user's password",
                "parameters": [
                    {"description": "passwords", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.passwordReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/update-avatar": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Replace the current user's avatar (base64 data URI)",
                "parameters": [
                    {"description": "avatar", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.avatarReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/accounts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List users (admin)",
                "parameters": [
                    {"type": "string", "description": "name regex", "name": "keyword", "in": "query"},
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create a verified user (admin)",
                "parameters": [
                    {"description": "account", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.accountCreateReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/accounts/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Edit a user (admin)",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.accountEditReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Delete a user (admin)",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/{entity}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List catalog entries",
                "parameters": [
                    {"type": "string", "description": "categories | statuses | classifications | conditions", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "name regex", "name": "keyword", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "integer", "description": "1-12", "name": "month", "in": "query"},
                    {"type": "integer", "description": "year", "name": "year", "in": "query"},
                    {"type": "string", "description": "asc | desc", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/{entity}/create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create a catalog entry",
                "parameters": [
                    {"type": "string", "description": "categories | statuses | classifications | conditions", "name": "entity", "in": "path", "required": true},
                    {"description": "entry", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.catalogCreateReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/{entity}/edit/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Edit a catalog entry",
                "parameters": [
                    {"type": "string", "description": "categories | statuses | classifications | conditions", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.catalogEditReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/{entity}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a catalog entry",
                "parameters": [
                    {"type": "string", "description": "categories | statuses | classifications | conditions", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Delete a catalog entry",
                "parameters": [
                    {"type": "string", "description": "categories | statuses | classifications | conditions", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "name regex", "name": "keyword", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "integer", "description": "1-12", "name": "month", "in": "query"},
                    {"type": "integer", "description": "year", "name": "year", "in": "query"},
                    {"type": "string", "description": "asc | desc", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc | desc", "name": "price", "in": "query"},
                    {"type": "string", "description": "asc | desc", "name": "quantity", "in": "query"},
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products/create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "product", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.productCreateReq"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/products/edit/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Edit a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "payload", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/http.productEditReq"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product and its images",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "http.registerReq": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "http.activationReq": {
            "type": "object",
            "required": ["activation_code", "activation_token"],
            "properties": {"activation_code": {"type": "string"}, "activation_token": {"type": "string"}}
        },
        "http.loginReq": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "http.socialReq": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {"avatar": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}}
        },
        "http.profileReq": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}}
        },
        "http.passwordReq": {
            "type": "object",
            "required": ["newPassword", "oldPassword"],
            "properties": {"newPassword": {"type": "string", "minLength": 6}, "oldPassword": {"type": "string"}}
        },
        "http.avatarReq": {
            "type": "object",
            "required": ["avatar"],
            "properties": {"avatar": {"type": "string"}}
        },
        "http.accountCreateReq": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"}, "name": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["user", "management", "admin"]}
            }
        },
        "http.accountEditReq": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}, "name": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["user", "management", "admin"]}
            }
        },
        "http.catalogCreateReq": {
            "type": "object",
            "properties": {"avatar": {"type": "string"}, "description": {"type": "string"}, "name": {"type": "string"}}
        },
        "http.catalogEditReq": {
            "type": "object",
            "properties": {"avatar": {"type": "string"}, "description": {"type": "string"}, "name": {"type": "string"}}
        },
        "http.productCreateReq": {
            "type": "object",
            "properties": {
                "category": {"type": "string"}, "classification": {"type": "string"},
                "condition": {"type": "string"}, "description": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"}, "price": {"type": "number"},
                "quantity": {"type": "integer"}, "status": {"type": "string"}
            }
        },
        "http.productEditReq": {
            "type": "object",
            "properties": {
                "category": {"type": "string"}, "classification": {"type": "string"},
                "condition": {"type": "string"}, "description": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"}, "price": {"type": "number"},
                "quantity": {"type": "integer"}, "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Inventory Service API",
	Description:      "Inventory admin backend: auth, users, catalog lookups and products.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
