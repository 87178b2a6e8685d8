// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/accounts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Open an account",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/commission": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Calculate transfer commission",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.TransferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/transfer": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Transfer money",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.TransferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get account",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/{id}/close": {
            "put": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Close account",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/currencies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List supported currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/currencies/convert": {
            "get": {
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "Convert an amount",
                "parameters": [
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "name": "from", "in": "query", "required": true},
                    {"type": "string", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a new user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.UserInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.UserInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "account.CreateAccountRequest": {
            "type": "object",
            "required": ["currency", "userId"],
            "properties": {
                "userId": {"type": "string"},
                "currency": {"type": "string"},
                "balance": {"type": "string"}
            }
        },
        "account.TransferRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "fromAccountId": {"type": "string"},
                "toAccountId": {"type": "string"}
            }
        },
        "user.UserInput": {
            "type": "object",
            "properties": {
                "login": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api/v1/minibank",
	Schemes:          []string{},
	Title:            "Minibank API",
	Description:      "Accounts, commissions and money transfers between currencies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
