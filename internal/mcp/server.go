package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

const Version = "0.1.0"

// ToolResponse is the structured result of every calculator tool.
type ToolResponse struct {
	Mode   calc.Mode `json:"mode" jsonschema_description:"Evaluation mode that produced the result"`
	Steps  []string  `json:"steps" jsonschema_description:"Step trace, the last line holds the final result"`
	Result string    `json:"result,omitempty" jsonschema_description:"Bare result value, empty on failure"`
	Error  string    `json:"error,omitempty" jsonschema_description:"Failure line when evaluation failed"`
	Kind   calc.Kind `json:"kind,omitempty" jsonschema_description:"Failure kind: parse, limit or kernel"`
}

// Server exposes the calculator as MCP tools.
type Server struct {
	calc      calc.Service
	mcpServer *server.MCPServer
}

func NewServer(svc calc.Service) *Server {
	s := &Server{
		calc:      svc,
		mcpServer: server.NewMCPServer("voicecalc-mcp", Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("calculate",
		mcp.WithDescription("Evaluate an arithmetic expression. Spoken operators (plus, minus, times, into, divide, cap, x) are accepted."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression, e.g. \"2 plus 3 x 4\"")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleCalculate))

	s.mcpServer.AddTool(mcp.NewTool("integrate",
		mcp.WithDescription("Integrate an expression in x. Give both limits for a definite integral."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Integrand, e.g. \"x cap 2\"")),
		mcp.WithString("lower", mcp.Description("Lower limit (optional)")),
		mcp.WithString("upper", mcp.Description("Upper limit (optional)")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleIntegrate))

	s.mcpServer.AddTool(mcp.NewTool("differentiate",
		mcp.WithDescription("Differentiate an expression with respect to x."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression, e.g. \"sin(x)\"")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleDifferentiate))

	s.mcpServer.AddTool(mcp.NewTool("simplify_trig",
		mcp.WithDescription("Simplify a trigonometric expression."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression, e.g. \"sin(x)**2 + cos(x)**2\"")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleSimplifyTrig))
}

func expression(args map[string]interface{}) (string, error) {
	expr, _ := args["expression"].(string)
	if strings.TrimSpace(expr) == "" {
		return "", fmt.Errorf("expression is required")
	}
	return expr, nil
}

func respond(out calc.Outcome) ToolResponse {
	res := out.Result
	resp := ToolResponse{Mode: res.Mode, Steps: res.Steps, Result: res.Value}
	if res.Err != nil {
		resp.Error = res.Final()
		resp.Kind = calc.KindOf(res.Err)
	}
	return resp
}

func (s *Server) handleCalculate(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (ToolResponse, error) {
	expr, err := expression(args)
	if err != nil {
		return ToolResponse{}, err
	}
	return respond(s.calc.Expression(ctx, expr)), nil
}

func (s *Server) handleIntegrate(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (ToolResponse, error) {
	expr, err := expression(args)
	if err != nil {
		return ToolResponse{}, err
	}
	lower, _ := args["lower"].(string)
	upper, _ := args["upper"].(string)
	return respond(s.calc.Integrate(ctx, expr, lower, upper)), nil
}

func (s *Server) handleDifferentiate(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (ToolResponse, error) {
	expr, err := expression(args)
	if err != nil {
		return ToolResponse{}, err
	}
	return respond(s.calc.Differentiate(ctx, expr)), nil
}

func (s *Server) handleSimplifyTrig(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (ToolResponse, error) {
	expr, err := expression(args)
	if err != nil {
		return ToolResponse{}, err
	}
	return respond(s.calc.Trigonometry(ctx, expr)), nil
}
