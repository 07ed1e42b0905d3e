// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go
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
        "/catalog": {
            "get": {"tags": ["catalog"], "summary": "List crops", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/events": {
            "get": {"tags": ["events"], "summary": "Stream farm events", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}": {
            "get": {"tags": ["farm"], "summary": "Get farm", "parameters": [{"$ref": "#/parameters/farmID"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/farms/{farmID}/plots/{plotID}/plant": {
            "post": {"tags": ["farm"], "summary": "Plant a crop", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/plotID"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/farms/{farmID}/plots/{plotID}/stage": {
            "post": {"tags": ["farm"], "summary": "Advance plot stage", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/plotID"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/farms/{farmID}/plots/{plotID}/harvest": {
            "post": {"tags": ["farm"], "summary": "Harvest a ready crop", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/plotID"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/farms/{farmID}/delivery": {
            "get": {"tags": ["delivery"], "summary": "Delivery status", "parameters": [{"$ref": "#/parameters/farmID"}], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}/delivery/claim": {
            "post": {"tags": ["delivery"], "summary": "Claim real products", "parameters": [{"$ref": "#/parameters/farmID"}, {"in": "header", "name": "Idempotency-Key", "type": "string"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/farms/{farmID}/orders": {
            "get": {"tags": ["delivery"], "summary": "List delivery orders", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}/orders/export": {
            "get": {"tags": ["delivery"], "summary": "Export orders as a spreadsheet", "parameters": [{"$ref": "#/parameters/farmID"}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}/orders/{orderID}": {
            "get": {"tags": ["delivery"], "summary": "Get delivery order", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/orderID"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/farms/{farmID}/orders/{orderID}/status": {
            "post": {"tags": ["delivery"], "summary": "Update order status", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/orderID"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/farms/{farmID}/stats/harvests": {
            "get": {"tags": ["stats"], "summary": "Harvest stats", "parameters": [{"$ref": "#/parameters/farmID"}], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}/stats/harvests/history": {
            "get": {"tags": ["stats"], "summary": "Harvest history", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}}
        },
        "/farms/{farmID}/activity": {
            "get": {"tags": ["farm"], "summary": "Farm activity", "parameters": [{"$ref": "#/parameters/farmID"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "parameters": {
        "farmID": {"in": "path", "name": "farmID", "required": true, "type": "integer"},
        "plotID": {"in": "path", "name": "plotID", "required": true, "type": "integer"},
        "orderID": {"in": "path", "name": "orderID", "required": true, "type": "integer"},
        "limit": {"in": "query", "name": "limit", "type": "integer", "default": 50}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Agrogame API",
	Description:      "Farming game backend: plots, server-driven crop growth, harvests and real product deliveries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
