// Package docs registra o documento Swagger da API no swag, para o /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/domain.HealthResponse"}
                    }
                }
            }
        },
        "/stock": {
            "get": {
                "produces": ["application/json"],
                "summary": "Estoque total de um produto buscado por nome",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Trecho do nome do produto",
                        "name": "query",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/domain.LookupResult"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/domain.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/domain.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "query required"}
            }
        },
        "domain.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true}
            }
        },
        "domain.LookupResult": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "query": {"type": "string", "example": "chair"},
                "idProduct": {"type": "integer", "example": 7},
                "totalQty": {"type": "integer", "example": 5},
                "matches": {"type": "array", "items": {"type": "integer"}}
            }
        }
    }
}`

// SwaggerInfo guarda as informações exportadas do documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "psstock API",
	Description:      "Consulta de estoque agregado no Webservice do PrestaShop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
