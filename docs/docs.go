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
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/trips/plan": {
            "post": {
                "description": "Builds itineraries for every requested trip type. With async=true the trip is queued for the planning worker.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Plan a trip",
                "parameters": [
                    {
                        "description": "Trip request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.PlanTripRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/trips/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Get a planned trip",
                "parameters": [
                    {"type": "string", "description": "Trip ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v2/travel_patterns": {
            "get": {
                "description": "Travel patterns of an agency matching purpose, zones, date and time, each with its booking calendar.",
                "produces": ["application/json"],
                "tags": ["travel_patterns"],
                "summary": "Available travel patterns",
                "parameters": [
                    {"type": "integer", "description": "Agency ID", "name": "agency_id", "in": "query", "required": true},
                    {"type": "string", "description": "Trip purpose code", "name": "purpose", "in": "query", "required": true},
                    {"type": "string", "description": "Booking customer ID", "name": "customer_id", "in": "query"},
                    {"type": "string", "description": "Travel date (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "integer", "description": "Seconds since midnight", "name": "start_time", "in": "query"},
                    {"type": "integer", "description": "Seconds since midnight", "name": "end_time", "in": "query"},
                    {"type": "number", "description": "Origin latitude", "name": "origin_lat", "in": "query"},
                    {"type": "number", "description": "Origin longitude", "name": "origin_lon", "in": "query"},
                    {"type": "number", "description": "Destination latitude", "name": "destination_lat", "in": "query"},
                    {"type": "number", "description": "Destination longitude", "name": "destination_lon", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StatusResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["travel_patterns"],
                "summary": "Create a travel pattern",
                "parameters": [
                    {
                        "description": "Travel pattern",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StatusResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Point": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "dto.PlanTripRequest": {
            "type": "object",
            "required": ["destination", "origin", "trip_time", "trip_types"],
            "properties": {
                "origin": {"$ref": "#/definitions/dto.Point"},
                "destination": {"$ref": "#/definitions/dto.Point"},
                "trip_time": {"type": "string", "format": "date-time"},
                "arrive_by": {"type": "boolean"},
                "trip_types": {"type": "array", "items": {"type": "string"}},
                "purpose": {"type": "string"},
                "only_filters": {"type": "array", "items": {"type": "string"}},
                "except_filters": {"type": "array", "items": {"type": "string"}},
                "funding_sources": {"type": "array", "items": {"type": "string"}},
                "async": {"type": "boolean"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"type": "object"}
            }
        },
        "utils.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Trip Planner API",
	Description:      "Multi-modal trip planner on top of OpenTripPlanner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
