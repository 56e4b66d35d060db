// Package docs registra la definición OpenAPI servida en /swagger (formato swag).
// Sale de las anotaciones de cmd/api y de los handlers: go generate ./cmd/api
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Registrar usuario",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "400": {"description": "campos faltantes / usuario existente", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "rate limit", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "400": {"description": "campos faltantes", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "credenciales inválidas", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"], "summary": "Usuario actual", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"user": {"$ref": "#/definitions/user"}}}},
                    "401": {"description": "sin token", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "token inválido", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "usuario inexistente", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/upgrade": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"], "summary": "Pasar a premium (testing)", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}}}
            }
        },
        "/auth/downgrade": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"], "summary": "Volver a free (testing)",
                "description": "Si la mascota es rabbit/dragon vuelve a cat; el color no cambia.",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}}}
            }
        },
        "/auth/purchase-food": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"], "summary": "Comprar comida",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/purchaseFoodRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "amount/price inválidos o tope de comida", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "402": {"description": "pago rechazado", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Ver mi mascota", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"pet": {"$ref": "#/definitions/pet"}}}},
                    "401": {"description": "sin token", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "pet not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/eat": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Comer",
                "description": "Consume 1 de comida: energy +12, happiness +3, intelligence -4 (clamp 0..100). Requiere intelligence >= 4.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "sin comida / sin inteligencia", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/play": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Jugar (premium)",
                "description": "happiness +15, intelligence +10, energy -5. Requiere premium y energy >= 5.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "sin energía", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "premium requerido", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/study": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Estudiar (premium)",
                "description": "intelligence +18, happiness +8, energy -6. Requiere premium y energy >= 6.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "sin energía", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "premium requerido", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/name": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Cambiar nombre",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/renameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "nombre vacío", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/appearance": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Cambiar apariencia",
                "description": "rabbit/dragon y cualquier color distinto de orange requieren premium.",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/appearanceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}},
                    "400": {"description": "valor inválido", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "premium requerido", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pet/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pet"], "summary": "Reset (testing)", "description": "Stats a 50 y comida a 10.",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/actionResponse"}}}
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "credentialsRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "renameRequest": {"type": "object", "properties": {"name": {"type": "string"}}},
        "appearanceRequest": {"type": "object", "properties": {
            "petType": {"type": "string", "enum": ["cat", "dog", "bird", "rabbit", "dragon"]},
            "color": {"type": "string", "enum": ["orange", "black", "white", "brown", "gray", "gold"]}
        }},
        "purchaseFoodRequest": {"type": "object", "properties": {"amount": {"type": "integer"}, "price": {"type": "number"}}},
        "user": {"type": "object", "properties": {
            "id": {"type": "string"}, "username": {"type": "string"},
            "isPremium": {"type": "boolean"}, "foodCount": {"type": "integer"}
        }},
        "pet": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"},
            "happiness": {"type": "integer"}, "energy": {"type": "integer"}, "intelligence": {"type": "integer"},
            "petType": {"type": "string"}, "color": {"type": "string"}, "userId": {"type": "string"}
        }},
        "changes": {"type": "object", "properties": {
            "happiness": {"type": "integer"}, "energy": {"type": "integer"}, "intelligence": {"type": "integer"}
        }},
        "sessionResponse": {"type": "object", "properties": {
            "message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/user"}
        }},
        "actionResponse": {"type": "object", "properties": {
            "message": {"type": "string"},
            "pet": {"$ref": "#/definitions/pet"},
            "user": {"$ref": "#/definitions/user"},
            "changes": {"$ref": "#/definitions/changes"}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Virtual Pet API",
	Description:      "Mascota virtual: stats, comida y suscripción premium.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
