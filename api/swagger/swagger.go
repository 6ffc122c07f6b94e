package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cultural Arts Admin API",
        "description": "Administration backend for the cultural arts office: events, student artists, borrowing and repairs.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Authentication", "description": "Administrator sign-in and session"},
        {"name": "Borrowing", "description": "Costume and equipment borrowing requests"},
        {"name": "Repairs", "description": "Inventory items awaiting repair"},
        {"name": "Dashboard", "description": "Student artist distributions"},
        {"name": "Students", "description": "Student artist profiles and cultural groups"},
        {"name": "Events", "description": "Cultural events and their images"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Failure"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Failure"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionResponse"}}
                }
            }
        },
        "/borrowing-requests": {
            "get": {
                "tags": ["Borrowing"],
                "summary": "List borrowing requests",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BorrowingListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/borrowing-requests/export": {
            "get": {
                "tags": ["Borrowing"],
                "summary": "Export borrowing requests",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/repair-items": {
            "get": {
                "tags": ["Repairs"],
                "summary": "List items awaiting repair",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RepairListResponse"}}
                }
            }
        },
        "/dashboard/campus-distribution": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Active students per campus",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "headers": {"X-Cache": {"type": "string"}}, "schema": {"$ref": "#/definitions/CampusDistributionResponse"}}
                }
            }
        },
        "/dashboard/college-distribution": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Active students per college",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "campus", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "headers": {"X-Cache": {"type": "string"}}, "schema": {"$ref": "#/definitions/CollegeDistributionResponse"}}
                }
            }
        },
        "/dashboard/cultural-group-distribution": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Active students per cultural group",
                "responses": {
                    "200": {"description": "OK", "headers": {"X-Cache": {"type": "string"}}, "schema": {"$ref": "#/definitions/GroupDistributionResponse"}}
                }
            }
        },
        "/students/profile": {
            "post": {
                "tags": ["Students"],
                "summary": "Student profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentProfileResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/students/cultural-group": {
            "post": {
                "tags": ["Students"],
                "summary": "Assign or clear a student's cultural group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCulturalGroupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Failure"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Failure"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListResponse"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create an event",
                "consumes": ["multipart/form-data", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "description", "in": "formData", "type": "string", "required": true},
                    {"name": "start_date", "in": "formData", "type": "string", "required": true},
                    {"name": "end_date", "in": "formData", "type": "string", "required": true},
                    {"name": "location", "in": "formData", "type": "string", "required": true},
                    {"name": "municipality", "in": "formData", "type": "string", "required": true},
                    {"name": "category", "in": "formData", "type": "string", "required": true},
                    {"name": "cultural_groups[]", "in": "formData", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "image", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CreateEventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Failure"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/events/delete": {
            "post": {
                "tags": ["Events"],
                "summary": "Delete an event and its announcements",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/events/image/{token}": {
            "get": {
                "tags": ["Events"],
                "summary": "Event image by signed token",
                "produces": ["image/png", "image/jpeg", "image/gif", "image/webp"],
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Image", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        }
    },
    "definitions": {
        "Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "Message": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["head", "staff", "central", "admin"]},
                "campus": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/UserInfo"}
            }
        },
        "SessionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/UserInfo"},
                "csrf_token": {"type": "string"}
            }
        },
        "BorrowingRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "student_name": {"type": "string"},
                "student_email": {"type": "string"},
                "item_name": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "BorrowingListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/BorrowingRequest"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "current_page": {"type": "integer"},
                        "total_pages": {"type": "integer"},
                        "total_requests": {"type": "integer"},
                        "limit": {"type": "integer"}
                    }
                }
            }
        },
        "RepairItem": {
            "type": "object",
            "properties": {
                "item_id": {"type": "integer"},
                "item_name": {"type": "string"},
                "category": {"type": "string"},
                "quantity": {"type": "integer"},
                "repair_status": {"type": "string"},
                "date_reported": {"type": "string"},
                "reported_by": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "RepairListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/RepairItem"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "current_page": {"type": "integer"},
                        "total_pages": {"type": "integer"},
                        "total_items": {"type": "integer"},
                        "per_page": {"type": "integer"}
                    }
                }
            }
        },
        "CampusDistributionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "campusDistribution": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "campus": {"type": "string"},
                            "count": {"type": "integer"},
                            "percentage": {"type": "number"}
                        }
                    }
                },
                "totalStudents": {"type": "integer"},
                "searchApplied": {"type": "boolean"}
            }
        },
        "CollegeDistributionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "collegeDistribution": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "college": {"type": "string"},
                            "count": {"type": "integer"},
                            "percentage": {"type": "number"}
                        }
                    }
                },
                "totalStudents": {"type": "integer"},
                "searchApplied": {"type": "boolean"},
                "campus": {"type": "string"}
            }
        },
        "GroupDistributionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "groupDistribution": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "group_name": {"type": "string"},
                            "count": {"type": "integer"}
                        }
                    }
                },
                "totalStudents": {"type": "integer"}
            }
        },
        "StudentProfileRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "integer"}
            }
        },
        "UpdateCulturalGroupRequest": {
            "type": "object",
            "required": ["student_id", "cultural_group"],
            "properties": {
                "student_id": {"type": "integer"},
                "cultural_group": {"type": "string"}
            }
        },
        "StudentProfileResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "student": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "sr_code": {"type": "string"},
                        "full_name": {"type": "string"},
                        "email": {"type": "string"},
                        "campus": {"type": "string"},
                        "college": {"type": "string"},
                        "program": {"type": "string"},
                        "year_level": {"type": "string"},
                        "cultural_group": {"type": "string"},
                        "status": {"type": "string"},
                        "performance_type": {"type": "string"},
                        "desired_cultural_group": {"type": "string"},
                        "application_date": {"type": "string"},
                        "member_since": {"type": "string"}
                    }
                }
            }
        },
        "DeleteEventRequest": {
            "type": "object",
            "required": ["event_id"],
            "properties": {
                "event_id": {"type": "integer"}
            }
        },
        "CreateEventResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "event_id": {"type": "integer"}
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "location": {"type": "string"},
                "venue": {"type": "string"},
                "category": {"type": "string"},
                "cultural_groups": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "image_url": {"type": "string"},
                "image_expires_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "EventListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/Event"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "current_page": {"type": "integer"},
                        "total_pages": {"type": "integer"},
                        "total_events": {"type": "integer"},
                        "limit": {"type": "integer"}
                    }
                }
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
