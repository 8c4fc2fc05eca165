// Package docs registers the OpenAPI document served by the swagger UI.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"termsOfService": "http://swagger.io/terms/",
		"contact": {
			"name": "API Support",
			"email": "support@example.com"
		},
		"license": {
			"name": "Apache 2.0",
			"url": "http://www.apache.org/licenses/LICENSE-2.0.html"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/categories": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Get category tree",
				"responses": {
					"200": {
						"description": "OK"
					},
					"500": {
						"description": "Internal error"
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Create category",
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/categories/{categoryId}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Update category",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Category ID (UUID)",
						"name": "categoryId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/projects/{projectId}/configurations": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Create configuration",
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project ID (UUID)",
						"name": "projectId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "List configurations",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Project ID (UUID)",
						"name": "projectId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Get configuration",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Delete configuration",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/selections": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Save selections",
				"responses": {
					"200": {
						"description": "OK"
					},
					"202": {
						"description": "Autosave scheduled"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"409": {
						"description": "Changed by another session"
					},
					"423": {
						"description": "Configuration locked"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/configurations/{configurationId}/complete": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Complete configuration",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"422": {
						"description": "Standard selection missing"
					},
					"423": {
						"description": "Configuration locked"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/lock": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Lock configuration",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/duplicate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Duplicate configuration",
				"responses": {
					"201": {
						"description": "Created"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/export": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"configurations"
				],
				"summary": "Export configuration",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					},
					{
						"type": "boolean",
						"description": "Publish the export document",
						"name": "publish",
						"in": "query"
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Open wizard",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard/next": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Next step",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard/previous": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Previous step",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard/jump": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Jump to category",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard/toggle": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Toggle selection",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"409": {
						"description": "Changed by another session"
					},
					"423": {
						"description": "Configuration locked"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/configurations/{configurationId}/wizard/preview": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wizard"
				],
				"summary": "Preview price",
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"404": {
						"description": "Not found"
					},
					"500": {
						"description": "Internal error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Configuration ID (UUID)",
						"name": "configurationId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/configurator",
	Schemes:          []string{},
	Title:            "Project Configuration API",
	Description:      "Catalog authoring, configuration wizard and pricing for construction projects",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
