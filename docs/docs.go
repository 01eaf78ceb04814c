// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// The template mirrors the swag annotations on the internal/api handlers and
// cmd/server/doc.go. Regenerate it after changing them:
//
//	swag init -g cmd/server/doc.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    }
                }
            }
        },
        "/api/v1/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    }
                }
            }
        },
        "/api/v1/recommendations/reload": {
            "post": {
                "description": "Rebuilds the catalog and interaction index from the data source and swaps it in",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Reload the dataset",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "501": {
                        "description": "Not Implemented",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    }
                }
            }
        },
        "/api/v1/recommendations/similar/{itemID}": {
            "get": {
                "description": "Hybrid recommendations anchored on an item, excluding the anchor itself",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend anime similar to a title",
                "parameters": [
                    {"type": "integer", "description": "Anchor item ID", "name": "itemID", "in": "path", "required": true},
                    {"type": "integer", "description": "User ID", "name": "user", "in": "query"},
                    {"type": "integer", "description": "Number of results (1-100)", "name": "n", "in": "query"},
                    {"type": "number", "description": "Hybrid factor weight in [0,1]", "name": "weight", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/recommend.Response"}}}
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    }
                }
            }
        },
        "/api/v1/recommendations/status": {
            "get": {
                "description": "Dataset snapshot, model, engine counters and event consumer counters",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Engine status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/api.StatusResponse"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/api/v1/recommendations/user/{userID}": {
            "get": {
                "description": "Ranks every unseen catalog item for the user and returns the top N",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend anime for a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userID", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of results (1-100)", "name": "n", "in": "query"},
                    {"type": "string", "description": "collaborative or hybrid", "name": "mode", "in": "query"},
                    {"type": "number", "description": "Hybrid factor weight in [0,1]", "name": "weight", "in": "query"},
                    {"type": "integer", "description": "Anchor item for hybrid similarity", "name": "anchor", "in": "query"},
                    {"type": "string", "description": "Comma-separated item IDs to leave out", "name": "exclude", "in": "query"},
                    {"type": "string", "description": "CEL filter expression", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/recommend.Response"}}}
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    },
                    "504": {
                        "description": "Gateway Timeout",
                        "schema": {"$ref": "#/definitions/api.APIResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "metadata": {"$ref": "#/definitions/api.Metadata"},
                "status": {"type": "string"}
            }
        },
        "api.DatasetStatus": {
            "type": "object",
            "properties": {
                "hybrid_available": {"type": "boolean"},
                "interactions": {"type": "integer"},
                "items": {"type": "integer"},
                "loaded_at": {"type": "string"},
                "users": {"type": "integer"},
                "version": {"type": "integer"}
            }
        },
        "api.Metadata": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean"},
                "query_time_ms": {"type": "integer"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "api.ModelStatus": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "version": {"type": "integer"}
            }
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {
                "config": {"type": "object"},
                "dataset": {"$ref": "#/definitions/api.DatasetStatus"},
                "engine": {"type": "object"},
                "events": {"type": "object"},
                "model": {"$ref": "#/definitions/api.ModelStatus"},
                "uptime_seconds": {"type": "number"},
                "version": {"type": "string"}
            }
        },
        "recommend.Recommendation": {
            "type": "object",
            "properties": {
                "item_id": {"type": "integer"},
                "name": {"type": "string"},
                "predicted_score": {"type": "number"}
            }
        },
        "recommend.Response": {
            "type": "object",
            "properties": {
                "cold_start": {"type": "boolean"},
                "failures": {"type": "integer"},
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/recommend.Recommendation"}
                },
                "message": {"type": "string"},
                "metadata": {"$ref": "#/definitions/recommend.ResponseMetadata"},
                "total_candidates": {"type": "integer"}
            }
        },
        "recommend.ResponseMetadata": {
            "type": "object",
            "properties": {
                "anchor_item_id": {"type": "integer"},
                "cache_hit": {"type": "boolean"},
                "dataset_version": {"type": "integer"},
                "latency_ms": {"type": "integer"},
                "mode": {"type": "string"},
                "model": {"type": "string"},
                "model_version": {"type": "integer"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "user_id": {"type": "integer"},
                "weight": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animerec API",
	Description:      "Top-N anime recommendations from a biased SVD model with optional genre similarity blending.\n\nAll responses use the envelope {status, data, metadata, error}.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
