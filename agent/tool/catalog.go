package tool

import (
	"github.com/cloudwego/eino/schema"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

// Canonical tool names, shared with the prompt templates.
const (
	ToolAddTransaction    = "add_transaction"
	ToolQueryTransactions = "query_transactions"
	ToolUpdateTransaction = "update_transaction"
	ToolTotalBalance      = "total_balance"
	ToolDailyBalance      = "daily_balance"
	ToolIntervalBalance   = "in_time_interval_balance"
	ToolIntervalIncome    = "in_time_interval_income"
	ToolIntervalExpenses  = "in_time_interval_expenses"
)

// Infos returns the tool schemas bound to a route's chat model. Only the
// finance route operates tools; agenda and faq answer from context alone.
func Infos(route contractx.Route) []*schema.ToolInfo {
	if route != contractx.RouteFinance {
		return nil
	}
	return []*schema.ToolInfo{
		{
			Name: ToolAddTransaction,
			Desc: "Adiciona uma transação (amount positivo) com os dados fornecidos.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"amount":         {Type: schema.Number, Desc: "Valor da transação (use positivo).", Required: true},
				"source_text":    {Type: schema.String, Desc: "Texto original do usuário.", Required: true},
				"occurred_at":    {Type: schema.String, Desc: "Timestamp ISO 8601; se ausente, usa o horário atual."},
				"type_id":        {Type: schema.Integer, Desc: "ID em transaction_types (1=INCOME, 2=EXPENSES, 3=TRANSFER)."},
				"type_name":      {Type: schema.String, Desc: "Nome do tipo: INCOME | EXPENSES | TRANSFER."},
				"category_id":    {Type: schema.Integer, Desc: "FK de categories (opcional)."},
				"description":    {Type: schema.String, Desc: "Descrição (opcional)."},
				"payment_method": {Type: schema.String, Desc: "Forma de pagamento (opcional)."},
			}),
		},
		{
			Name: ToolQueryTransactions,
			Desc: "Consulta transações por texto, tipo e datas locais. Com intervalo a ordem é cronológica (ASC); sem intervalo, mais recente primeiro (DESC).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"text":            {Type: schema.String, Desc: "Texto a buscar em source_text ou description."},
				"type_name":       {Type: schema.String, Desc: "Nome do tipo: INCOME | EXPENSES | TRANSFER."},
				"date_local":      {Type: schema.String, Desc: "Data local YYYY-MM-DD."},
				"date_from_local": {Type: schema.String, Desc: "Data inicial local YYYY-MM-DD."},
				"date_to_local":   {Type: schema.String, Desc: "Data final local YYYY-MM-DD."},
				"limit":           {Type: schema.Integer, Desc: "Número máximo de registros (padrão 20)."},
			}),
		},
		{
			Name: ToolUpdateTransaction,
			Desc: "Atualiza uma transação por id, ou pela mais recente que combine match_text e date_local. Exige ao menos um campo a alterar.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"id":             {Type: schema.Integer, Desc: "ID da transação a atualizar."},
				"match_text":     {Type: schema.String, Desc: "Texto para localizar a transação quando id ausente."},
				"date_local":     {Type: schema.String, Desc: "Data local YYYY-MM-DD, usada com match_text quando id ausente."},
				"amount":         {Type: schema.Number, Desc: "Novo valor."},
				"type_id":        {Type: schema.Integer, Desc: "Novo type_id (1/2/3)."},
				"type_name":      {Type: schema.String, Desc: "Novo type_name: INCOME | EXPENSES | TRANSFER."},
				"category_id":    {Type: schema.Integer, Desc: "Nova categoria (id)."},
				"category_name":  {Type: schema.String, Desc: "Nova categoria (nome)."},
				"description":    {Type: schema.String, Desc: "Nova descrição."},
				"payment_method": {Type: schema.String, Desc: "Novo meio de pagamento."},
				"occurred_at":    {Type: schema.String, Desc: "Novo timestamp ISO 8601."},
			}),
		},
		{
			Name: ToolTotalBalance,
			Desc: "Retorna o saldo total (INCOME - EXPENSES) em todo o histórico, ignorando TRANSFER.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: ToolDailyBalance,
			Desc: "Retorna o saldo (INCOME - EXPENSES) do dia local informado, ignorando TRANSFER.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date_local": {Type: schema.String, Desc: "Data local YYYY-MM-DD.", Required: true},
			}),
		},
		{
			Name: ToolIntervalBalance,
			Desc: "Retorna o saldo (INCOME - EXPENSES) do intervalo de datas locais, ignorando TRANSFER.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date_from_local": {Type: schema.String, Desc: "Data inicial local YYYY-MM-DD.", Required: true},
				"date_to_local":   {Type: schema.String, Desc: "Data final local YYYY-MM-DD.", Required: true},
			}),
		},
		{
			Name: ToolIntervalIncome,
			Desc: "Retorna o total de INCOME do intervalo de datas locais.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date_from_local": {Type: schema.String, Desc: "Data inicial local YYYY-MM-DD.", Required: true},
				"date_to_local":   {Type: schema.String, Desc: "Data final local YYYY-MM-DD.", Required: true},
			}),
		},
		{
			Name: ToolIntervalExpenses,
			Desc: "Retorna o total de EXPENSES do intervalo de datas locais.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date_from_local": {Type: schema.String, Desc: "Data inicial local YYYY-MM-DD.", Required: true},
				"date_to_local":   {Type: schema.String, Desc: "Data final local YYYY-MM-DD.", Required: true},
			}),
		},
	}
}
