// Package docs registers the OpenAPI document served by the swagger UI.
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
                "tags": ["health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange username and password for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LoginResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current profile",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Profile"}}}
            }
        },
        "/api/v1/track": {
            "get": {
                "tags": ["tracking"],
                "summary": "Public status lookup by letter number",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Letter number", "name": "search", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TrackingResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Change event stream",
                "produces": ["text/event-stream"],
                "parameters": [
                    {"type": "string", "description": "Only events of this table", "name": "table", "in": "query"},
                    {"type": "string", "description": "Only events of this report", "name": "report_id", "in": "query"}
                ],
                "responses": {"200": {"description": "event stream", "schema": {"type": "string"}}}
            }
        },
        "/api/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List profiles",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Match against name", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.UserInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Profile"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/users/staff": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List staff members",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}}}
            }
        },
        "/api/v1/users/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.UserInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Profile"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a profile",
                "parameters": [{"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "List reports",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Service type", "name": "layanan", "in": "query"},
                    {"type": "string", "description": "Workflow status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Match against hal or no_surat", "name": "q", "in": "query"},
                    {"type": "string", "description": "Current holder ID", "name": "holder", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ReportListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Register an incoming letter",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.ReportInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/reports/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Report counts per status",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ReportStats"}}}
            }
        },
        "/api/v1/reports/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Report details",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ReportDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Edit a draft report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.ReportInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Report"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Delete a report",
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/reports/{id}/forward": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Forward a draft to a coordinator",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.forwardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Report"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/reports/{id}/assignments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Assign staff to a report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.AssignInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.TaskAssignment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/reports/{id}/forward-to-tu": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Approve a report and send it to TU",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.notesRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Report"}}}
            }
        },
        "/api/v1/reports/{id}/return": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Send a report awaiting approval back to its coordinator",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.notesRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Report"}}}
            }
        },
        "/api/v1/reports/{id}/finalize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Complete a report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.notesRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Report"}}}
            }
        },
        "/api/v1/reports/{id}/attachments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "List the attachments of a report",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.FileAttachment"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Upload an attachment",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "File to upload", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.FileAttachment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/attachments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Redirect to a presigned download link",
                "parameters": [{"type": "string", "description": "Attachment ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "Found"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Delete an attachment",
                "parameters": [{"type": "string", "description": "Attachment ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/attachments/{id}/content": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Stream attachment content",
                "produces": ["application/octet-stream"],
                "parameters": [{"type": "string", "description": "Attachment ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/v1/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Open assignments of the current staff member",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.TaskAssignment"}}}}
            }
        },
        "/api/v1/assignments/{id}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Submit finished work",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Assignment ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.submitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TaskAssignment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/v1/assignments/{id}/revision": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workflow"],
                "summary": "Ask a staff member to redo an assignment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Assignment ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.notesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TaskAssignment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.forwardRequest": {
            "type": "object",
            "properties": {"coordinator_id": {"type": "string"}, "notes": {"type": "string"}}
        },
        "handler.notesRequest": {
            "type": "object",
            "properties": {"notes": {"type": "string"}}
        },
        "handler.submitRequest": {
            "type": "object",
            "properties": {"completed_tasks": {"type": "array", "items": {"type": "string"}}, "notes": {"type": "string"}}
        },
        "model.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["Admin", "TU", "Koordinator", "Staff"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "no_surat": {"type": "string"},
                "hal": {"type": "string"},
                "layanan": {"type": "string"},
                "dari": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "in-progress", "revision-required", "pending-approval-tu", "completed"]},
                "created_by": {"type": "string"},
                "current_holder": {"type": "string"},
                "document_verification": {"type": "object", "additionalProperties": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.ReportDetail": {
            "allOf": [
                {"$ref": "#/definitions/model.Report"},
                {
                    "type": "object",
                    "properties": {
                        "progress": {"type": "integer"},
                        "task_assignments": {"type": "array", "items": {"$ref": "#/definitions/model.TaskAssignment"}},
                        "workflow_history": {"type": "array", "items": {"$ref": "#/definitions/model.WorkflowHistory"}},
                        "file_attachments": {"type": "array", "items": {"$ref": "#/definitions/model.FileAttachment"}}
                    }
                }
            ]
        },
        "model.TaskAssignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "report_id": {"type": "string"},
                "staff_id": {"type": "string"},
                "staff_name": {"type": "string"},
                "coordinator_id": {"type": "string"},
                "todo_list": {"type": "array", "items": {"type": "string"}},
                "completed_tasks": {"type": "array", "items": {"type": "string"}},
                "notes": {"type": "string"},
                "revision_notes": {"type": "string"},
                "status": {"type": "string"},
                "progress": {"type": "integer"},
                "created_at": {"type": "string"},
                "completed_at": {"type": "string"},
                "reports": {"$ref": "#/definitions/model.Report"}
            }
        },
        "model.WorkflowHistory": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "report_id": {"type": "string"},
                "action": {"type": "string"},
                "status": {"type": "string"},
                "notes": {"type": "string"},
                "user_id": {"type": "string"},
                "actor_name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.FileAttachment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "report_id": {"type": "string"},
                "file_name": {"type": "string"},
                "storage_path": {"type": "string"},
                "size": {"type": "integer"},
                "content_type": {"type": "string"},
                "uploaded_by": {"type": "string"},
                "created_at": {"type": "string"},
                "file_url": {"type": "string"}
            }
        },
        "service.LoginResult": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string"},
                "profile": {"$ref": "#/definitions/model.Profile"}
            }
        },
        "service.UserInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "service.ReportInput": {
            "type": "object",
            "properties": {
                "no_surat": {"type": "string"},
                "hal": {"type": "string"},
                "layanan": {"type": "string"},
                "document_verification": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "service.ReportListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Report"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "service.ReportStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "draft": {"type": "integer"},
                "in_progress": {"type": "integer"},
                "pending_approval_tu": {"type": "integer"},
                "revision_required": {"type": "integer"},
                "completed": {"type": "integer"}
            }
        },
        "service.AssignInput": {
            "type": "object",
            "properties": {
                "staff_ids": {"type": "array", "items": {"type": "string"}},
                "todo_list": {"type": "array", "items": {"type": "string"}},
                "notes": {"type": "string"},
                "document_verification": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "service.TrackingResult": {
            "type": "object",
            "properties": {
                "no_surat": {"type": "string"},
                "hal": {"type": "string"},
                "layanan": {"type": "string"},
                "status": {"type": "string"},
                "status_code": {"type": "string"},
                "progress": {"type": "integer"},
                "timeline": {"type": "array", "items": {"$ref": "#/definitions/service.TrackingStep"}},
                "coordinator_notes": {"type": "array", "items": {"$ref": "#/definitions/service.CoordinatorNote"}},
                "last_update": {"type": "string"}
            }
        },
        "service.TrackingStep": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "date": {"type": "string"},
                "actor": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "service.CoordinatorNote": {
            "type": "object",
            "properties": {
                "staff_name": {"type": "string"},
                "note": {"type": "string"},
                "revision_note": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "SiTrack API",
	Description:      "Correspondence tracking: registration, coordinator and staff workflow, public tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
