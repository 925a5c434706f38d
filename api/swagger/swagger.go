package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Internship API",
        "description": "Session-scoped internship eligibility and document service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Students", "description": "Student eligibility views"},
        {"name": "Staff", "description": "Supervisors and monitors"},
        {"name": "Sessions", "description": "Offer session views"},
        {"name": "Documents", "description": "Stored PDF documents"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain a token",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List active students, optionally by session",
                "parameters": [
                    {"name": "session", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Students"},
                    "404": {"description": "No students matched"}
                }
            }
        },
        "/students/sessions": {
            "get": {
                "tags": ["Students"],
                "summary": "Sessions used by students, newest first",
                "responses": {
                    "200": {"description": "Session labels"},
                    "404": {"description": "No sessions found"}
                }
            }
        },
        "/students/without-supervisor": {
            "get": {
                "tags": ["Students"],
                "summary": "Students without a supervisor in a department and session",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string", "required": true},
                    {"name": "session", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Students"},
                    "404": {"description": "No students matched"}
                }
            }
        },
        "/students/{studentId}/supervisor/{supervisorId}": {
            "post": {
                "tags": ["Students"],
                "summary": "Assign a supervisor for the student's next session",
                "responses": {
                    "200": {"description": "Updated student"},
                    "404": {"description": "Student or supervisor not found"}
                }
            }
        },
        "/supervisors": {
            "get": {
                "tags": ["Staff"],
                "summary": "Supervisors active in a session",
                "parameters": [
                    {"name": "session", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Supervisors"},
                    "404": {"description": "No supervisors found"}
                }
            }
        },
        "/offers/sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Sessions carrying offers of the requested validity",
                "parameters": [
                    {"name": "valid", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Session labels"},
                    "404": {"description": "No sessions found"}
                }
            }
        },
        "/documents/offer/{offerId}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Stream the offer description PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF bytes"},
                    "404": {"description": "Offer or document missing"}
                }
            }
        }
    },
    "definitions": {
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
