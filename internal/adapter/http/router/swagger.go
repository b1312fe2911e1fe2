package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerSwaggerRoutes(router *mux.Router) {
	router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	router.HandleFunc("/swagger/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	router.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Banking Record Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        url: %q,
        dom_id: "#swagger-ui",
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banking Record Service",
    "description": "Customer and account record management with deposit and withdrawal rules.",
    "version": "1.0.0"
  },
  "paths": {
    "/account": {
      "get": {
        "summary": "Get an account by account number",
        "parameters": [{"name": "accountNum", "in": "query", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {"200": {"description": "Account, or null when no account matches"}}
      },
      "post": {
        "summary": "Create a customer with its first account",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Customer"}}}},
        "responses": {"200": {"description": "Persisted customer"}, "400": {"description": "Validation failure or deposit limit exceeded"}}
      },
      "put": {
        "summary": "Update a customer record as submitted",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Customer"}}}},
        "responses": {"200": {"description": "Persisted customer"}}
      },
      "delete": {
        "summary": "Delete an account by account number",
        "parameters": [{"name": "accountNum", "in": "query", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {"200": {"description": "Deleted account"}, "404": {"description": "No account matches"}}
      }
    },
    "/all-cust-accts": {
      "get": {
        "summary": "List all customers with their accounts",
        "responses": {"200": {"description": "Customer list"}}
      }
    },
    "/cust-accounts": {
      "get": {
        "summary": "Find customers by name",
        "parameters": [{"name": "customerName", "in": "query", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "Matching customers"}}
      }
    },
    "/deposit": {
      "put": {
        "summary": "Deposit into an account",
        "parameters": [
          {"name": "accountNum", "in": "query", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "depositAmount", "in": "query", "required": true, "schema": {"type": "number"}}
        ],
        "responses": {"200": {"description": "Updated account"}, "400": {"description": "Deposit limit exceeded"}, "404": {"description": "Account not found"}}
      }
    },
    "/withdraw": {
      "put": {
        "summary": "Withdraw from an account",
        "parameters": [
          {"name": "accountNum", "in": "query", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "withdrawAmount", "in": "query", "required": true, "schema": {"type": "number"}}
        ],
        "responses": {"200": {"description": "Updated account"}, "400": {"description": "Minimum balance or withdrawal fraction violated"}, "404": {"description": "Account not found"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Account": {
        "type": "object",
        "properties": {
          "acctId": {"type": "string"},
          "accountNum": {"type": "integer", "format": "int64"},
          "createDate": {"type": "string", "format": "date-time"},
          "balanceAmt": {"type": "string"}
        }
      },
      "Customer": {
        "type": "object",
        "properties": {
          "custId": {"type": "string"},
          "custName": {"type": "string"},
          "dob": {"type": "string", "format": "date"},
          "email": {"type": "string"},
          "accounts": {"type": "array", "items": {"$ref": "#/components/schemas/Account"}}
        }
      }
    }
  }
}`
