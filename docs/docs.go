// Package docs registers the OpenAPI description served at /swagger-doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/tasks/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "List all tasks, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TaskResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "parameters": [
                    {"description": "Task body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TaskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            }
        },
        "/tasks/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Get a task by ID",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.DetailResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            },
            "put": {
                "description": "Omitted description and due_date are cleared; omitted status resets to pending.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Replace a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Full task body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.DetailResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            },
            "patch": {
                "description": "Only supplied fields change. null clears description or due_date.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Partially update a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Partial task body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.DetailResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.DetailResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.DetailResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.DetailResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "dto.TaskRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Test task"},
                "description": {"type": "string", "example": "Testing"},
                "due_date": {"type": "string", "example": "2025-12-31"},
                "status": {"type": "string", "enum": ["pending", "in_progress", "done"], "example": "pending"}
            }
        },
        "dto.TaskResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "due_date": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Task Tracker API",
	Description:      "CRUD over tasks backed by SQLite.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
