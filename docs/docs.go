// Package docs holds the Swagger 2.0 document served at /swagger/*. It follows the
// layout swag emits, so running swag init -g cmd/server/main.go replaces it in place.
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
		"/auth/register": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"parameters": [
					{
						"description": "Registration data",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.RegisterRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.TokenResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/token": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Exchange credentials for a token",
				"parameters": [
					{
						"description": "Login credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TokenRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.TokenResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/items": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "List every item (admin)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListItemsResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "The caller must own list_id unless they are an admin.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Add an item to a list",
				"parameters": [
					{
						"description": "Item payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateItemRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.ListItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/items/{id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Get an item",
				"parameters": [
					{
						"type": "integer",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Delete an item",
				"parameters": [
					{
						"type": "integer",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.DeletedResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Partially update an item",
				"parameters": [
					{
						"type": "integer",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.UpdateItemRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/lists": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "List every packing list (admin)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListsResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Create a packing list",
				"parameters": [
					{
						"description": "List payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateListRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/lists/{id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Get a packing list with its items",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Delete a packing list and its items",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.DeletedResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Partially update a packing list",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.UpdateListRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/lists/{id}/forcast": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Trips ending more than 15 days away are looked up one year earlier; \"shifted\" reports when that happened.",
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Weather forecast for a list's destination and dates",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ForecastResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/lists/{id}/items": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Items on a packing list",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ItemsResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"lists"
				],
				"summary": "Add an item to a packing list",
				"parameters": [
					{
						"type": "integer",
						"description": "List ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Item payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.NewItemRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.ItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "List users",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UsersResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Create a user (admin)",
				"parameters": [
					{
						"description": "User payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.CreatedUserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/users/{username}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Get a user and their lists",
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Delete a user",
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.DeletedUserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Only admins may change is_admin.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Partially update a user",
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.UpdateUserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"errors.ErrorBody": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"status": {
					"type": "integer"
				}
			}
		},
		"errors.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/errors.ErrorBody"
				}
			}
		},
		"handler.CreateItemRequest": {
			"type": "object",
			"required": [
				"category",
				"item",
				"list_id",
				"qty"
			],
			"properties": {
				"category": {
					"type": "string",
					"maxLength": 100
				},
				"item": {
					"type": "string",
					"maxLength": 255
				},
				"list_id": {
					"type": "integer",
					"minimum": 1
				},
				"qty": {
					"type": "integer",
					"minimum": 1
				}
			}
		},
		"handler.CreateListRequest": {
			"type": "object",
			"required": [
				"searched_address"
			],
			"properties": {
				"arrival_date": {
					"type": "string",
					"example": "2023-05-01"
				},
				"departure_date": {
					"type": "string",
					"example": "2023-05-03"
				},
				"searched_address": {
					"type": "string",
					"maxLength": 255
				},
				"username": {
					"type": "string",
					"maxLength": 25
				}
			}
		},
		"handler.CreateUserRequest": {
			"type": "object",
			"required": [
				"email",
				"first_name",
				"last_name",
				"password",
				"username"
			],
			"properties": {
				"email": {
					"type": "string",
					"maxLength": 255
				},
				"first_name": {
					"type": "string",
					"maxLength": 255
				},
				"is_admin": {
					"type": "boolean"
				},
				"last_name": {
					"type": "string",
					"maxLength": 255
				},
				"password": {
					"type": "string",
					"maxLength": 72,
					"minLength": 5
				},
				"username": {
					"type": "string",
					"maxLength": 25
				}
			}
		},
		"handler.CreatedUserResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/model.User"
				}
			}
		},
		"handler.DeletedResponse": {
			"type": "object",
			"properties": {
				"deleted": {
					"type": "integer"
				}
			}
		},
		"handler.DeletedUserResponse": {
			"type": "object",
			"properties": {
				"deleted": {
					"type": "string"
				}
			}
		},
		"handler.ForecastResponse": {
			"type": "object",
			"properties": {
				"forcast": {
					"$ref": "#/definitions/service.ListForecast"
				}
			}
		},
		"handler.ItemResponse": {
			"type": "object",
			"properties": {
				"item": {
					"$ref": "#/definitions/model.ListItem"
				}
			}
		},
		"handler.ItemsResponse": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.ListItem"
					}
				}
			}
		},
		"handler.ListItemResponse": {
			"type": "object",
			"properties": {
				"listItem": {
					"$ref": "#/definitions/model.ListItem"
				}
			}
		},
		"handler.ListItemsResponse": {
			"type": "object",
			"properties": {
				"listItems": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.ListItem"
					}
				}
			}
		},
		"handler.ListResponse": {
			"type": "object",
			"properties": {
				"list": {}
			}
		},
		"handler.ListsResponse": {
			"type": "object",
			"properties": {
				"lists": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.List"
					}
				}
			}
		},
		"handler.NewItemRequest": {
			"type": "object",
			"required": [
				"category",
				"item",
				"qty"
			],
			"properties": {
				"category": {
					"type": "string",
					"maxLength": 100
				},
				"item": {
					"type": "string",
					"maxLength": 255
				},
				"qty": {
					"type": "integer",
					"minimum": 1
				}
			}
		},
		"handler.RegisterRequest": {
			"type": "object",
			"required": [
				"email",
				"first_name",
				"last_name",
				"password",
				"username"
			],
			"properties": {
				"email": {
					"type": "string",
					"maxLength": 255
				},
				"first_name": {
					"type": "string",
					"maxLength": 255
				},
				"last_name": {
					"type": "string",
					"maxLength": 255
				},
				"password": {
					"type": "string",
					"maxLength": 72,
					"minLength": 5
				},
				"username": {
					"type": "string",
					"maxLength": 25
				}
			}
		},
		"handler.TokenRequest": {
			"type": "object",
			"required": [
				"password",
				"username"
			],
			"properties": {
				"password": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"handler.TokenResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"handler.UpdateItemRequest": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"maxLength": 100,
					"minLength": 1
				},
				"item": {
					"type": "string",
					"maxLength": 255,
					"minLength": 1
				},
				"qty": {
					"type": "integer"
				}
			}
		},
		"handler.UpdateListRequest": {
			"type": "object",
			"properties": {
				"arrival_date": {
					"type": "string",
					"example": "2023-05-01"
				},
				"departure_date": {
					"type": "string",
					"example": "2023-05-03"
				},
				"searched_address": {
					"type": "string",
					"maxLength": 255,
					"minLength": 1
				}
			}
		},
		"handler.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string",
					"maxLength": 255
				},
				"first_name": {
					"type": "string",
					"maxLength": 255,
					"minLength": 1
				},
				"is_admin": {
					"type": "boolean"
				},
				"last_name": {
					"type": "string",
					"maxLength": 255,
					"minLength": 1
				},
				"password": {
					"type": "string",
					"maxLength": 72,
					"minLength": 5
				}
			}
		},
		"handler.UserResponse": {
			"type": "object",
			"properties": {
				"user": {}
			}
		},
		"handler.UsersResponse": {
			"type": "object",
			"properties": {
				"users": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.User"
					}
				}
			}
		},
		"model.List": {
			"type": "object",
			"properties": {
				"arrival_date": {
					"type": "string",
					"example": "2023-05-01"
				},
				"departure_date": {
					"type": "string",
					"example": "2023-05-03"
				},
				"id": {
					"type": "integer"
				},
				"searched_address": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"model.ListItem": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string"
				},
				"id": {
					"type": "integer"
				},
				"item": {
					"type": "string"
				},
				"list_id": {
					"type": "integer"
				},
				"qty": {
					"type": "integer"
				}
			}
		},
		"model.User": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"is_admin": {
					"type": "boolean"
				},
				"last_name": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"service.ListForecast": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"arrival_date": {
					"type": "string"
				},
				"days": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/weather.Day"
					}
				},
				"departure_date": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"list_id": {
					"type": "integer"
				},
				"resolvedAddress": {
					"type": "string"
				},
				"shifted": {
					"type": "boolean"
				},
				"timezone": {
					"type": "string"
				}
			}
		},
		"weather.Day": {
			"type": "object",
			"properties": {
				"conditions": {
					"type": "string"
				},
				"datetime": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"icon": {
					"type": "string"
				},
				"precip": {
					"type": "number"
				},
				"precipprob": {
					"type": "number"
				},
				"temp": {
					"type": "number"
				},
				"tempmax": {
					"type": "number"
				},
				"tempmin": {
					"type": "number"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Packable API",
	Description:      "Travel packing lists with per-trip weather forecasts and JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
