// Package docs registers the swagger spec served under /swagger.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход администратора",
                "parameters": [
                    {"description": "Имя и пароль", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Credentials"}}
                ],
                "responses": {
                    "200": {"description": "JWT токен", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Список команд по очкам",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Добавить команду",
                "parameters": [
                    {"description": "Команда", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTeamInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Имя занято", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/teams/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Команда по имени",
                "parameters": [
                    {"type": "string", "description": "Имя команды", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Список матчей",
                "parameters": [
                    {"type": "string", "description": "Вид спорта", "name": "sport", "in": "query"},
                    {"type": "string", "description": "semifinal | final | third_place | none", "name": "stage", "in": "query"},
                    {"type": "string", "description": "scheduled | ongoing | finished", "name": "status", "in": "query"},
                    {"type": "boolean", "description": "Только незавершённые", "name": "unfinished", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Добавить матч",
                "parameters": [
                    {"description": "Матч", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateMatchInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/matches/{matchID}/score": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Записать счёт и завершить матч",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Счёт", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateScoreInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/matches/{matchID}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Изменить статус матча",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "{\"status\": \"ongoing\"}", "name": "input", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/schedules": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Каждый участник получает ровно games_per_participant разных соперников.\nС import=true пары сохраняются как запланированные матчи вида спорта sport.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Сгенерировать расписание",
                "parameters": [
                    {"description": "Параметры", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.GenerateScheduleInput"}}
                ],
                "responses": {
                    "200": {"description": "Только пары", "schema": {"$ref": "#/definitions/services.ScheduleResult"}},
                    "201": {"description": "Пары импортированы", "schema": {"$ref": "#/definitions/services.ScheduleResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Расписание невозможно", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sports"],
                "summary": "Виды спорта и состояние сеток",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/sports/{sport}/bracket": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sports"],
                "summary": "Посеять четырёх участников в полуфиналы",
                "parameters": [
                    {"type": "string", "description": "Вид спорта", "name": "sport", "in": "path", "required": true},
                    {"description": "{\"seeds\": [\"A\", \"B\", \"C\", \"D\"]}", "name": "input", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Сетка уже есть", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sports/{sport}/bracket/advance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sports"],
                "summary": "Создать финал и матч за третье место",
                "parameters": [
                    {"type": "string", "description": "Вид спорта", "name": "sport", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Полуфиналы не завершены или ничья", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sports/{sport}/placement": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sports"],
                "summary": "Итоговые места вида спорта",
                "parameters": [
                    {"type": "string", "description": "Вид спорта", "name": "sport", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PlacementResult"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Ничья в матче сетки", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Текущая таблица",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/standings/rebuild": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Пересчитать очки, сохранить и опубликовать отчёт",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RebuildResult"}},
                    "422": {"description": "Ничья или противоречивая сетка", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/report": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["standings"],
                "summary": "Отчёт в Markdown",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        }
    },
    "definitions": {
        "models.Credentials": {
            "type": "object",
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "models.Match": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "participant_a": {"type": "string"},
                "participant_b": {"type": "string"},
                "score_a": {"type": "integer"},
                "score_b": {"type": "integer"},
                "sport": {"type": "string"},
                "stage": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "models.Pairing": {
            "type": "object",
            "properties": {"a": {"type": "string"}, "b": {"type": "string"}}
        },
        "models.Placement": {
            "type": "object",
            "properties": {
                "first": {"type": "string"},
                "fourth": {"type": "string"},
                "second": {"type": "string"},
                "semifinal_losers": {"type": "array", "items": {"type": "string"}},
                "semifinal_winners": {"type": "array", "items": {"type": "string"}},
                "sport": {"type": "string"},
                "third": {"type": "string"}
            }
        },
        "models.Standing": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "draws": {"type": "integer"},
                "games_played": {"type": "integer"},
                "losses": {"type": "integer"},
                "points": {"type": "integer"},
                "rank": {"type": "integer"},
                "team": {"type": "string"},
                "updated_at": {"type": "string"},
                "wins": {"type": "integer"}
            }
        },
        "services.CreateMatchInput": {
            "type": "object",
            "properties": {
                "participant_a": {"type": "string"},
                "participant_b": {"type": "string"},
                "sport": {"type": "string"},
                "stage": {"type": "string"}
            }
        },
        "services.CreateTeamInput": {
            "type": "object",
            "properties": {"color": {"type": "string"}, "name": {"type": "string"}}
        },
        "services.GenerateScheduleInput": {
            "type": "object",
            "properties": {
                "format": {"type": "string"},
                "games_per_participant": {"type": "integer"},
                "import": {"type": "boolean"},
                "participants": {"type": "array", "items": {"type": "string"}},
                "seed": {"type": "integer"},
                "sport": {"type": "string"},
                "teams": {"type": "integer"}
            }
        },
        "services.PlacementResult": {
            "type": "object",
            "properties": {
                "complete": {"type": "boolean"},
                "placement": {"$ref": "#/definitions/models.Placement"},
                "points": {"type": "object", "additionalProperties": {"type": "integer"}},
                "sport": {"type": "string"}
            }
        },
        "services.RebuildResult": {
            "type": "object",
            "properties": {
                "placements": {"type": "array", "items": {"$ref": "#/definitions/models.Placement"}},
                "publish_error": {"type": "string"},
                "report_url": {"type": "string"},
                "standings": {"type": "array", "items": {"$ref": "#/definitions/models.Standing"}}
            }
        },
        "services.ScheduleResult": {
            "type": "object",
            "properties": {
                "generator": {"type": "string"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}},
                "pairings": {"type": "array", "items": {"$ref": "#/definitions/models.Pairing"}}
            }
        },
        "services.UpdateScoreInput": {
            "type": "object",
            "properties": {"score_a": {"type": "integer"}, "score_b": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tournament Results API",
	Description:      "Teams, matches, balanced schedules, four-team brackets and cumulative standings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
