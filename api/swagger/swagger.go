package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Training Scheduler API",
        "description": "Curriculum generation and conflict checking for training course rounds",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Curriculum", "description": "Template expansion, persistence and conflict checks"},
        {"name": "Operations", "description": "Health and metrics"}
    ],
    "paths": {
        "/curricula/generate": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Generate a curriculum preview for a course round",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateCurriculumRequest"}}
                ],
                "responses": {
                    "200": {"description": "Preview generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Template or start date unusable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curricula/persist": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Persist a proposal or an edited session list",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PersistCurriculumRequest"}}
                ],
                "responses": {
                    "201": {"description": "All sessions saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "207": {"description": "Some sessions failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Blocking conflicts without override", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Proposal expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curricula/sessions/check": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Revalidate one session against current bookings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curricula/candidates": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Rank instructors and classrooms for a slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CandidatesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curricula/rounds/{roundId}/sessions": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List persisted sessions of a course round",
                "parameters": [
                    {"name": "roundId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curricula/rounds/{roundId}/sessions/export": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "Download the persisted timetable of a course round as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "roundId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file", "schema": {"type": "file"}}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Operations"],
                "summary": "In-process counters as JSON",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateCurriculumRequest": {
            "type": "object",
            "required": ["templateId", "roundId", "startDate"],
            "properties": {
                "templateId": {"type": "string"},
                "roundId": {"type": "string"},
                "startDate": {"type": "string", "example": "2025-03-10"},
                "skipWeekends": {"type": "boolean"},
                "skipHolidays": {"type": "boolean"},
                "preferredStartHour": {"type": "number", "example": 9},
                "preferredEndHour": {"type": "number", "example": 18},
                "maxSessionsPerDay": {"type": "integer"},
                "minBreakMinutes": {"type": "integer"},
                "maxContinuousHours": {"type": "number"},
                "minClassroomCapacity": {"type": "integer"}
            }
        },
        "GeneratedSession": {
            "type": "object",
            "properties": {
                "templateSessionId": {"type": "string"},
                "sessionDate": {"type": "string", "format": "date-time"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "12:00"},
                "subjectId": {"type": "string"},
                "dayNumber": {"type": "integer"},
                "sessionNumber": {"type": "integer"},
                "assignedInstructorId": {"type": "string"},
                "assignedClassroomId": {"type": "string"},
                "conflicts": {"type": "array", "items": {"$ref": "#/definitions/Conflict"}},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "qualityScore": {"type": "integer"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["INSTRUCTOR", "CLASSROOM", "TRAINEE", "TIME"]},
                "severity": {"type": "string", "enum": ["CRITICAL", "HIGH", "MEDIUM", "LOW"]},
                "message": {"type": "string"},
                "affectedResourceIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "PersistCurriculumRequest": {
            "type": "object",
            "properties": {
                "proposalId": {"type": "string"},
                "roundId": {"type": "string"},
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/GeneratedSession"}},
                "override": {"type": "boolean"}
            }
        },
        "CheckSessionRequest": {
            "type": "object",
            "required": ["sessionDate", "startTime", "endTime"],
            "properties": {
                "sessionId": {"type": "string"},
                "roundId": {"type": "string"},
                "sessionDate": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "instructorId": {"type": "string"},
                "classroomId": {"type": "string"}
            }
        },
        "CandidatesRequest": {
            "type": "object",
            "required": ["subjectId", "sessionDate", "startTime", "durationHours"],
            "properties": {
                "subjectId": {"type": "string"},
                "sessionDate": {"type": "string"},
                "startTime": {"type": "string"},
                "durationHours": {"type": "number"},
                "preferredInstructorId": {"type": "string"},
                "preferredClassroomId": {"type": "string"},
                "minClassroomCapacity": {"type": "integer"}
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
