// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "openapi": "3.1.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Workify Team",
            "email": "dev@workify.example.com"
        },
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "//{{.Host}}{{.BasePath}}"
        }
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Authenticates a local account and returns an access and refresh token pair",
                "tags": ["auth"],
                "summary": "Log in",
                "requestBody": {
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/identity.LoginRequest"}
                        }
                    },
                    "required": true
                },
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh the token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "List clients",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Create a client",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["employees"],
                "summary": "List employees",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["audit"],
                "summary": "Audit entries of one aggregate",
                "parameters": [
                    {"name": "aggregate_type", "in": "query", "required": true, "schema": {"type": "string"}},
                    {"name": "aggregate_id", "in": "query", "required": true, "schema": {"type": "string", "format": "uuid"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/system/ping": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness ping",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "components": {
        "schemas": {
            "identity.LoginRequest": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                    "username": {"type": "string"},
                    "password": {"type": "string"}
                }
            }
        },
        "securitySchemes": {
            "BearerAuth": {
                "description": "Bearer token authentication. Format: \"Bearer {token}\"",
                "type": "apiKey",
                "name": "Authorization",
                "in": "header"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Workify API",
	Description:      "Back office API: clients and contracts, budgets and projects, employees, dictionaries and audit history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
