package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PawHaven Shelter API",
        "description": "Adoption backend for the PawHaven animal shelter",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Pets", "description": "Public pet catalog"},
        {"name": "Species", "description": "Species reference data"},
        {"name": "Applications", "description": "Adoption application intake"},
        {"name": "Authentication", "description": "Admin login"},
        {"name": "Admin", "description": "Protected shelter management"}
    ],
    "paths": {
        "/pets": {
            "get": {
                "tags": ["Pets"],
                "summary": "List pets available for adoption",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "speciesId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pets/{id}": {
            "get": {
                "tags": ["Pets"],
                "summary": "Get pet detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/species": {
            "get": {
                "tags": ["Species"],
                "summary": "List species",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an adoption application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"},
                    "404": {"description": "Pet not found"},
                    "409": {"description": "Duplicate application"},
                    "422": {"description": "Pet already adopted"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the shelter admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/pets": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "List pets including soft-deleted ones",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "speciesId", "in": "query", "type": "integer"},
                    {"name": "includeDeleted", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Register a new pet",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/pets/{id}": {
            "put": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Update a pet's details",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Soft-delete a pet",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Pet has open applications or an active adoption"}
                }
            }
        },
        "/admin/pets/{id}/image": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Upload a pet photo",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "image", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "List applications",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "petId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications/{id}/approve": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Approve a pending application",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ReviewApplicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Lifecycle rule violated"}
                }
            }
        },
        "/admin/applications/{id}/reject": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Reject a pending application",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ReviewApplicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Lifecycle rule violated"}
                }
            }
        },
        "/admin/adoptions": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "List adoption history",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "petId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/adoptions/{id}/confirm": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Confirm a pickup, completing the adoption",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ConfirmAdoptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Lifecycle rule violated"}
                }
            }
        },
        "/admin/adoptions/{id}/cancel": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Cancel an adoption before pickup",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CancelAdoptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Lifecycle rule violated"}
                }
            }
        },
        "/admin/adoptions/{id}/return": {
            "post": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Record an adopted pet being returned",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReturnPetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Lifecycle rule violated"}
                }
            }
        },
        "/admin/adoptions/export": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Export adoption history as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "petId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/adoptions/export/{token}": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Download a previously generated export",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitApplicationRequest": {
            "type": "object",
            "required": ["petId", "applicantName", "email", "reason"],
            "properties": {
                "petId": {"type": "integer"},
                "applicantName": {"type": "string", "maxLength": 200},
                "email": {"type": "string"},
                "phone": {"type": "string", "maxLength": 20},
                "reason": {"type": "string", "minLength": 50, "maxLength": 5000}
            }
        },
        "ReviewApplicationRequest": {
            "type": "object",
            "properties": {
                "reviewedBy": {"type": "string", "maxLength": 100}
            }
        },
        "ConfirmAdoptionRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"}
            }
        },
        "CancelAdoptionRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "ReturnPetRequest": {
            "type": "object",
            "required": ["returnReason"],
            "properties": {
                "returnReason": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "CreatePetRequest": {
            "type": "object",
            "required": ["name", "speciesId"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "speciesId": {"type": "integer"},
                "age": {"type": "integer", "minimum": 0, "maximum": 50},
                "imageUrl": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "UpdatePetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "age": {"type": "integer", "minimum": 0, "maximum": 50},
                "imageUrl": {"type": "string"},
                "description": {"type": "string"}
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
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
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
