// Package docs registra a documentação OpenAPI do painel, servida em /swagger/.
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
        "/dashboard": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["dashboard"],
                "summary": "Visão geral",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboardservice.Pagina"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/caixa": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["caixa"],
                "summary": "Página de caixa",
                "parameters": [
                    {"type": "string", "description": "Filtro por id, status ou data", "name": "busca", "in": "query"},
                    {"type": "string", "description": "Modal aberto", "name": "modal", "in": "query"},
                    {"type": "integer", "description": "Caixa selecionado", "name": "id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/caixaservice.Pagina"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/caixa/abrir": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["caixa"],
                "summary": "Abrir caixa",
                "parameters": [{"description": "Saldo inicial", "name": "caixa", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AbrirCaixaInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Caixa"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/caixa/movimentacao": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["caixa"],
                "summary": "Registrar entrada ou saída",
                "parameters": [{"description": "Movimentação", "name": "movimentacao", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.MovimentacaoInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Movimentacao"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/caixa/{id}/fechar": {
            "post": {
                "produces": ["application/json"],
                "tags": ["caixa"],
                "summary": "Fechar caixa",
                "parameters": [{"type": "integer", "description": "ID do caixa", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Caixa"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/caixa/{id}/excluir": {
            "post": {
                "tags": ["caixa"],
                "summary": "Excluir caixa",
                "parameters": [{"type": "integer", "description": "ID do caixa", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/dashboard/vendas": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["vendas"],
                "summary": "Página de vendas",
                "parameters": [
                    {"type": "string", "description": "Filtro por cliente ou id", "name": "busca", "in": "query"},
                    {"type": "string", "description": "Modal aberto", "name": "modal", "in": "query"},
                    {"type": "integer", "description": "Venda selecionada", "name": "id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/vendaservice.Pagina"}}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["vendas"],
                "summary": "Registrar venda",
                "description": "Exige caixa aberto. O total é recalculado a partir do catálogo de produtos.",
                "parameters": [{"description": "Venda", "name": "venda", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.VendaInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Venda"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/produtos": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["produtos"],
                "summary": "Página de produtos",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/produtoservice.Pagina"}}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["produtos"],
                "summary": "Cadastrar produto",
                "parameters": [{"description": "Produto", "name": "produto", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProdutoInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Produto"}}}
            }
        },
        "/dashboard/produtos/{id}/ficha": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["produtos"],
                "summary": "Adicionar insumo à ficha técnica",
                "parameters": [
                    {"type": "integer", "description": "ID do produto", "name": "id", "in": "path", "required": true},
                    {"description": "Item da ficha", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ItemFichaInput"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/dashboard/insumos": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["insumos"],
                "summary": "Página de insumos",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/insumoservice.Pagina"}}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["insumos"],
                "summary": "Cadastrar insumo",
                "parameters": [{"description": "Insumo", "name": "insumo", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.InsumoInput"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/dashboard/insumos/{id}/excluir": {
            "post": {
                "tags": ["insumos"],
                "summary": "Excluir insumo",
                "description": "Sem force, responde 409 quando o insumo é usado em ficha técnica.",
                "parameters": [
                    {"type": "integer", "description": "ID do insumo", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Remove também dos produtos que o utilizam", "name": "force", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/clientes": {
            "get": {
                "produces": ["text/html", "application/json"],
                "tags": ["clientes"],
                "summary": "Página de clientes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/clienteservice.Pagina"}}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["clientes"],
                "summary": "Cadastrar cliente",
                "parameters": [{"description": "Cliente", "name": "cliente", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ClienteInput"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/dashboard/relatorios/{arquivo}": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["relatorios"],
                "summary": "Exportar relatório",
                "parameters": [{"type": "string", "description": "recurso.formato (vendas, caixa, insumos, produtos, clientes; csv ou xlsx)", "name": "arquivo", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "category": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.AbrirCaixaInput": {"type": "object", "properties": {"saldoInicial": {"type": "number"}}},
        "domain.MovimentacaoInput": {
            "type": "object",
            "properties": {
                "caixaId": {"type": "integer"},
                "tipo": {"type": "string", "enum": ["ENTRADA", "SAIDA"]},
                "descricao": {"type": "string"},
                "valor": {"type": "number"}
            }
        },
        "domain.Movimentacao": {"type": "object"},
        "domain.Caixa": {"type": "object"},
        "domain.VendaInput": {
            "type": "object",
            "properties": {
                "clienteId": {"type": "integer"},
                "desconto": {"type": "number"},
                "valorPago": {"type": "number"},
                "dataVenda": {"type": "string"},
                "itens": {"type": "array", "items": {"type": "object", "properties": {"produtoId": {"type": "integer"}, "quantidade": {"type": "integer"}}}}
            }
        },
        "domain.Venda": {"type": "object"},
        "domain.ProdutoInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "idTipoProduto": {"type": "integer"},
                "quantidadeEstoque": {"type": "integer"},
                "estoqueMinimo": {"type": "integer"},
                "precoVenda": {"type": "number"}
            }
        },
        "domain.Produto": {"type": "object"},
        "domain.ItemFichaInput": {"type": "object", "properties": {"insumoId": {"type": "integer"}, "quantidade": {"type": "number"}}},
        "domain.InsumoInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "tipoInsumoId": {"type": "integer"},
                "unidadeMedidaId": {"type": "integer"},
                "quantidadeEstoque": {"type": "number"},
                "custoUnitario": {"type": "number"},
                "dataValidade": {"type": "string"}
            }
        },
        "domain.ClienteInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "telefone": {"type": "string"},
                "endereco": {"type": "string"},
                "saldo": {"type": "number"},
                "limiteCredito": {"type": "boolean"}
            }
        },
        "caixaservice.Pagina": {"type": "object"},
        "vendaservice.Pagina": {"type": "object"},
        "produtoservice.Pagina": {"type": "object"},
        "insumoservice.Pagina": {"type": "object"},
        "clienteservice.Pagina": {"type": "object"},
        "dashboardservice.Pagina": {"type": "object"}
    }
}`

// SwaggerInfo guarda os metadados exportados da documentação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marmitaria - Painel Administrativo",
	Description:      "Painel de caixa, vendas, produtos, insumos, clientes e relatórios sobre a API REST da marmitaria.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
