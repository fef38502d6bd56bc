// Package sqlagent implements the natural-language query feature: a
// tool-calling OpenAI agent that translates operator instructions into
// allow-listed SELECT statements over the ingested records, or triggers
// file processing.
package sqlagent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registrosrv"
	"github.com/iiTzGuzz/LLMSDATA/pkg/logx"
)

const (
	defaultModel = openai.ChatModelGPT4oMini

	// maxSteps bounds the tool-calling loop; every tool here returns its
	// result directly, so one round trip is the normal case.
	maxSteps = 4

	cacheKeyPrefix = "llmsdata:agent:"
	cacheTTL       = 10 * time.Minute
)

// Agent answers natural-language instructions with tool calls.
type Agent struct {
	client  *openai.Client
	db      *sqlx.DB
	service *registrosrv.RegistroService
	cache   *redis.Client
	model   string
}

// NewAgent builds an agent over the given OpenAI key, database and
// processing service. The redis client is optional; when present,
// answers are cached briefly keyed by instruction.
func NewAgent(apiKey string, db *sqlx.DB, service *registrosrv.RegistroService, cache *redis.Client) *Agent {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Agent{
		client:  &client,
		db:      db,
		service: service,
		cache:   cache,
		model:   defaultModel,
	}
}

func toolDefs() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        "procesar_archivo",
					Description: openai.String("Procesa un archivo de ancho fijo e inserta registros en DB."),
					Parameters: openai.FunctionParameters{
						"type": "object",
						"properties": map[string]any{
							"path": map[string]any{
								"type":        "string",
								"description": "Ruta completa al archivo TXT en disco.",
							},
						},
						"required": []string{"path"},
					},
				},
			},
		},
		{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        "consultar_sql_json",
					Description: openai.String("Ejecuta SELECT/CTE sobre registros o v_contacto y devuelve filas JSON."),
					Parameters: openai.FunctionParameters{
						"type": "object",
						"properties": map[string]any{
							"sql": map[string]any{
								"type":        "string",
								"description": "Consulta SELECT o CTE.",
							},
						},
						"required": []string{"sql"},
					},
				},
			},
		},
		{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        "consultar_sql_texto",
					Description: openai.String("Ejecuta SELECT/CTE y devuelve texto tabulado simple."),
					Parameters: openai.FunctionParameters{
						"type": "object",
						"properties": map[string]any{
							"sql": map[string]any{
								"type":        "string",
								"description": "Consulta SELECT o CTE.",
							},
						},
						"required": []string{"sql"},
					},
				},
			},
		},
	}
}

// Query answers one instruction. Tool results are returned directly as
// the agent output; a plain-text answer is wrapped under "text".
func (a *Agent) Query(ctx context.Context, instruccion string) (map[string]any, error) {
	if cached, ok := a.fromCache(ctx, instruccion); ok {
		return cached, nil
	}

	out, err := a.run(ctx, instruccion)
	if err != nil {
		return nil, err
	}
	a.toCache(ctx, instruccion, out)
	return out, nil
}

func (a *Agent) run(ctx context.Context, instruccion string) (map[string]any, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(instruccion),
	}

	for step := 0; step < maxSteps; step++ {
		completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       a.model,
			Messages:    messages,
			Tools:       toolDefs(),
			Temperature: openai.Float(0),
		})
		if err != nil {
			return nil, fmt.Errorf("openai chat api error: %w", err)
		}
		if len(completion.Choices) == 0 {
			return nil, errors.New("no response from openai")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return map[string]any{"text": msg.Content}, nil
		}

		// Every tool returns its payload directly, mirroring the legacy
		// agent's return_direct behavior.
		call := msg.ToolCalls[0]
		payload := a.dispatch(ctx, call.Function.Name, call.Function.Arguments)
		if payload != nil {
			return payload, nil
		}

		// Unknown tool name: tell the model and let it retry.
		messages = append(messages, msg.ToParam())
		messages = append(messages, openai.ToolMessage(
			fmt.Sprintf(`{"ok": false, "error": "herramienta desconocida: %s"}`, call.Function.Name),
			call.ID,
		))
	}
	return nil, errors.New("agent exceeded tool-calling step limit")
}

// dispatch runs one tool; nil means the tool name was not recognized.
func (a *Agent) dispatch(ctx context.Context, name, rawArgs string) map[string]any {
	var args struct {
		Path string `json:"path"`
		SQL  string `json:"sql"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return map[string]any{"ok": false, "error": "argumentos inválidos: " + err.Error(), "tool_used": name}
	}

	switch name {
	case "procesar_archivo":
		return a.procesarArchivo(ctx, args.Path)
	case "consultar_sql_json":
		return a.consultarSQL(ctx, args.SQL, "consultar_sql_json", a.runSQLToJSON)
	case "consultar_sql_texto":
		return a.consultarSQL(ctx, args.SQL, "consultar_sql_texto", a.runSQLToText)
	default:
		return nil
	}
}

func (a *Agent) procesarArchivo(ctx context.Context, path string) map[string]any {
	result, err := a.service.ProcessPath(ctx, path, "", "")
	if err != nil {
		return map[string]any{"ok": false, "error": err.Error(), "tool_used": "procesar_archivo"}
	}
	return map[string]any{"ok": true, "insertados": result.Insertados, "tool_used": "procesar_archivo"}
}

// consultarSQL applies the safety filters, executes, and retries without
// unaccent() when the extension is missing.
func (a *Agent) consultarSQL(ctx context.Context, sql, tool string, run func(context.Context, string) (map[string]any, error)) map[string]any {
	if !isSafeSQL(sql) {
		return map[string]any{"ok": false, "error": "Solo se permiten consultas SELECT/CTE.", "tool_used": tool}
	}
	if !targetsAllowedRelation(sql) {
		return map[string]any{"ok": false, "error": "La consulta debe apuntar a registros o v_contacto.", "tool_used": tool}
	}

	out, err := run(ctx, sql)
	if err == nil {
		out["tool_used"] = tool
		return out
	}

	if strings.Contains(strings.ToLower(err.Error()), "unaccent") {
		sql2 := stripUnaccent(sql)
		logx.Warnf("Retrying query without unaccent: %v", err)
		out2, err2 := run(ctx, sql2)
		if err2 != nil {
			return map[string]any{"ok": false, "error": err2.Error(), "sql": sql2, "tool_used": tool}
		}
		out2["tool_used"] = tool
		out2["notice"] = "fallback_sin_unaccent"
		out2["original_sql"] = sql
		return out2
	}
	return map[string]any{"ok": false, "error": err.Error(), "sql": sql, "tool_used": tool}
}

func (a *Agent) runSQLToJSON(ctx context.Context, sql string) (map[string]any, error) {
	rows, err := a.db.QueryxContext(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return map[string]any{"ok": true, "sql": sql, "rows": data, "row_count": len(data)}, nil
}

func (a *Agent) runSQLToText(ctx context.Context, sql string) (map[string]any, error) {
	rows, err := a.db.QueryxContext(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var lines []string
	if len(cols) > 0 {
		lines = append(lines, strings.Join(cols, " | "))
	}
	count := 0
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(vals))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				parts[i] = ""
			case []byte:
				parts[i] = string(t)
			default:
				parts[i] = fmt.Sprintf("%v", t)
			}
		}
		lines = append(lines, strings.Join(parts, " | "))
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return map[string]any{"ok": true, "sql": sql, "text": strings.Join(lines, "\n"), "row_count": count}, nil
}

func cacheKey(instruccion string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(instruccion))))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (a *Agent) fromCache(ctx context.Context, instruccion string) (map[string]any, bool) {
	if a.cache == nil {
		return nil, false
	}
	raw, err := a.cache.Get(ctx, cacheKey(instruccion)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Warnf("Agent cache read failed: %v", err)
		}
		return nil, false
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	out["cached"] = true
	return out, true
}

func (a *Agent) toCache(ctx context.Context, instruccion string, out map[string]any) {
	if a.cache == nil {
		return
	}
	// File processing mutates state; its result must not be replayed.
	if tool, _ := out["tool_used"].(string); tool == "procesar_archivo" {
		return
	}
	if ok, _ := out["ok"].(bool); !ok && out["text"] == nil {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, cacheKey(instruccion), raw, cacheTTL).Err(); err != nil {
		logx.Warnf("Agent cache write failed: %v", err)
	}
}
