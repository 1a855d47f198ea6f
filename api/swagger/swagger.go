package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kelasku API",
        "description": "Class cohort portal: schedules, assignments, activities, forum, external info",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Registration, login, profile"},
        {"name": "Schedule", "description": "Weekly course schedule per class"},
        {"name": "Assignments", "description": "Class assignments and completion"},
        {"name": "Activities", "description": "Cohort activities and registration"},
        {"name": "ExternalInfo", "description": "External opportunities and deadlines"},
        {"name": "Forum", "description": "Discussion posts, comments, upvotes"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Email already registered", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate by email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List schedule items",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Create schedule item (admin)",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "completed"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List activities",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "enum": ["upcoming", "past"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/activities/{id}/register": {
            "post": {
                "tags": ["Activities"],
                "summary": "Register the caller for an activity",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Already registered or full", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/external-info": {
            "get": {
                "tags": ["ExternalInfo"],
                "summary": "List external info",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "enum": ["upcoming", "past"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/forum/posts": {
            "get": {
                "tags": ["Forum"],
                "summary": "List forum posts",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Forum"],
                "summary": "Create a post",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/forum/posts/{id}/upvote": {
            "put": {
                "tags": ["Forum"],
                "summary": "Increment post upvotes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "className": {"type": "string", "enum": ["A", "B", "C"]},
                "isAdmin": {"type": "boolean"},
                "adminCode": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
