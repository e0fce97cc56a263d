package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the feed service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>openmensa-parser — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public feed endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "openmensa-parser", "version": "v0.3.0" },
  "paths": {
    "/feed/v2/{identifier}/full.xml": {
      "get": {
        "summary": "Full OpenMensa v2 feed from today onwards",
        "parameters": [ { "name": "identifier", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": {
          "200": { "description": "OpenMensa v2 XML document", "content": { "application/xml": {} } },
          "404": { "description": "unknown canteen identifier" },
          "500": { "description": "translation or serialization failure" }
        }
      }
    },
    "/feed/v2/{identifier}/today.xml": {
      "get": {
        "summary": "OpenMensa v2 feed restricted to the current day",
        "parameters": [ { "name": "identifier", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": {
          "200": { "description": "OpenMensa v2 XML document", "content": { "application/xml": {} } },
          "404": { "description": "unknown canteen identifier" },
          "500": { "description": "translation or serialization failure" }
        }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics exposition" } } } }
  }
}`
