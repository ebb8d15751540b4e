package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

func newServer() *Server {
	return NewServer(calc.NewService(zap.NewNop().Sugar(), nil))
}

func TestCalculateTool(t *testing.T) {
	s := newServer()
	resp, err := s.handleCalculate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "2 cap 10",
	})
	require.NoError(t, err)
	assert.Equal(t, calc.ModeArithmetic, resp.Mode)
	assert.Equal(t, "1024", resp.Result)
	assert.Empty(t, resp.Error)

	resp, err = s.handleCalculate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "1 divide 0",
	})
	require.NoError(t, err)
	assert.Equal(t, calc.InvalidSyntax, resp.Error)
	assert.Equal(t, calc.KindParse, resp.Kind)
}

func TestIntegrateTool(t *testing.T) {
	s := newServer()
	resp, err := s.handleIntegrate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "x",
		"lower":      "0",
		"upper":      "1",
	})
	require.NoError(t, err)
	assert.Equal(t, calc.ModeDefiniteIntegral, resp.Mode)
	assert.Equal(t, "0.500", resp.Result)

	resp, err = s.handleIntegrate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "x",
		"lower":      "0",
		"upper":      "y",
	})
	require.NoError(t, err)
	assert.Equal(t, calc.KindLimit, resp.Kind)
}

func TestDifferentiateAndTrigTools(t *testing.T) {
	s := newServer()
	resp, err := s.handleDifferentiate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "sin(x)",
	})
	require.NoError(t, err)
	assert.Equal(t, "cos(x)", resp.Result)

	resp, err = s.handleSimplifyTrig(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"expression": "sin(x)**2 + cos(x)**2",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Result)
}

func TestMissingExpression(t *testing.T) {
	_, err := newServer().handleDifferentiate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}
