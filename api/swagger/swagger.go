package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Prime Admin Gateway",
        "description": "Admin gateway for the academy management system",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Session lifecycle and impersonation"},
        {"name": "Batches", "description": "Batch scheduling and enrollment"},
        {"name": "Attendance", "description": "Class session attendance"},
        {"name": "Reports", "description": "Report generation and exports"},
        {"name": "Payments", "description": "EMI and payment records"},
        {"name": "Employees", "description": "Employee time tracking"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in against the academy API",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/impersonate/{id}": {
            "post": {
                "tags": ["Auth"],
                "summary": "Act as another user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/batches": {
            "get": {
                "tags": ["Batches"],
                "summary": "List batches",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "faculty_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Batches"],
                "summary": "Create batch",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/attendances": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Reconciled attendance roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark one student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "204": {"description": "Marked"}
                }
            }
        },
        "/reports/{type}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Generate a report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "batch_id", "in": "query", "type": "string"},
                    {"name": "faculty_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or invalid filter"}
                }
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "batch_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employee-attendance/punch-in": {
            "post": {
                "tags": ["Employees"],
                "summary": "Punch in with a camera photo",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PunchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "BatchRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "faculty_id": {"type": "string"},
                "status": {"type": "string"},
                "schedule": {"$ref": "#/definitions/Schedule"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "string"}},
                "timeSlots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}}
            }
        },
        "TimeSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "durationMinutes": {"type": "integer"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["student_id", "status"],
            "properties": {
                "student_id": {"type": "string"},
                "status": {"type": "string", "enum": ["PRESENT", "MANUAL_PRESENT", "ABSENT"]},
                "is_manual": {"type": "boolean"}
            }
        },
        "PunchRequest": {
            "type": "object",
            "required": ["photo"],
            "properties": {
                "photo": {"type": "string"},
                "location": {"type": "object"},
                "fingerprint_token": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
