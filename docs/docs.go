// Package docs holds the swagger document served at /swagger. It is written
// by hand in swag's output format and lists the public and admin paths.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness of the service and its backing stores",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"description": "Account data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserRegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/public/magazines/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Get a published magazine by slug",
                "parameters": [{"type": "string", "description": "Magazine slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/magazines": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["magazines"],
                "summary": "List magazines",
                "parameters": [
                    {"type": "string", "description": "draft, published, archived or all", "name": "status", "in": "query"},
                    {"type": "boolean", "description": "Only featured issues", "name": "featured", "in": "query"},
                    {"type": "string", "description": "Substring of name or description", "name": "search", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Items per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["magazines"],
                "summary": "Create a draft magazine",
                "parameters": [{"description": "Magazine", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateMagazineRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Slug taken", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/seo/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["seo"],
                "summary": "Score arbitrary SEO metadata",
                "parameters": [{"description": "Metadata", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/seo.Input"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.UserRegisterInput": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "maxLength": 100, "minLength": 2},
                "password": {"type": "string", "maxLength": 64, "minLength": 8}
            }
        },
        "request.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.CreateMagazineRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "slug": {"type": "string"},
                "edition": {"type": "string", "maxLength": 100},
                "editionNumber": {"type": "integer"},
                "description": {"type": "string"},
                "coverImage": {"type": "string"},
                "featured": {"type": "boolean"},
                "publishDate": {"type": "string"}
            }
        },
        "seo.Input": {
            "type": "object",
            "properties": {
                "metaTitle": {"type": "string"},
                "metaDescription": {"type": "string"},
                "metaKeywords": {"type": "string"},
                "canonicalUrl": {"type": "string"},
                "ogImage": {"type": "string"},
                "robotsMeta": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/models.FieldError"}}
            }
        },
        "models.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Magazine CMS API",
	Description:      "Block based magazine editor with ads, articles and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
