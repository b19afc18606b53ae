package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleEngines(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"engines": s.service.Engines(),
	})
}

// handleEval evaluates one expression on one engine. The expression is
// given either as expr=<infix> or as a, op and b parameters; engine
// defaults to the configured engine.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	expr, err := parseExpressionParams(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	name := r.URL.Query().Get("engine")
	if name == "" {
		name = s.cfg.Engine
	}
	if name == "" || name == orchestration.AllEngines {
		name = config.DefaultEngine
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	res, err := s.service.Evaluate(ctx, name, expr)
	if err != nil {
		s.writeEvaluationError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, EvalResponse{
		Expression: expr.String(),
		Engine:     res.Engine,
		Result:     res.Result.Value,
		Bits:       res.Result.Bits,
		Words:      res.Result.Words,
		Duration:   res.Duration.String(),
	})
}

// handleCompare evaluates one expression on every engine. Engine failures
// are reported per row; only invalid input fails the request.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	expr, err := parseExpressionParams(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	results, err := s.service.Compare(ctx, expr)
	if err != nil {
		s.writeEvaluationError(w, err)
		return
	}

	_, ok, consistent := orchestration.Consistent(results)
	resp := CompareResponse{
		Expression: expr.String(),
		Consistent: ok && consistent,
		Results:    make([]EngineResult, 0, len(results)),
	}
	for _, res := range results {
		row := EngineResult{Engine: res.Engine, Duration: res.Duration.String()}
		if res.Err != nil {
			row.Error = res.Err.Error()
		} else {
			row.Result = res.Result.Value
			row.Bits = res.Result.Bits
		}
		resp.Results = append(resp.Results, row)
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// parseExpressionParams reads the expression of a request.
func parseExpressionParams(r *http.Request) (engine.Expression, error) {
	q := r.URL.Query()
	if raw := q.Get("expr"); raw != "" {
		expr, err := engine.ParseExpression(raw)
		if err != nil {
			return engine.Expression{}, RequestError{Message: err.Error(), StatusCode: http.StatusBadRequest}
		}
		return expr, nil
	}

	opName := q.Get("op")
	if opName == "" {
		return engine.Expression{}, RequestError{
			Message:    "missing 'op' parameter (or 'expr')",
			StatusCode: http.StatusBadRequest,
		}
	}
	op, err := engine.ParseOp(opName)
	if err != nil {
		return engine.Expression{}, RequestError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	if q.Get("a") == "" {
		return engine.Expression{}, RequestError{Message: "missing 'a' parameter", StatusCode: http.StatusBadRequest}
	}
	return engine.Expression{Op: op, A: q.Get("a"), B: q.Get("b")}, nil
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	var operandErr apperrors.OperandError
	switch {
	case errors.Is(err, service.ErrMaxDigitsExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, bigint.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrInvalidExpression),
		errors.Is(err, engine.ErrUnknownEngine),
		errors.Is(err, bigint.ErrMalformedInput),
		errors.As(err, &operandErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr RequestError
	if errors.As(err, &reqErr) {
		s.writeErrorResponse(w, reqErr.StatusCode, reqErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writeEvaluationError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("evaluation failed", err)
	}
	s.writeErrorResponse(w, status, err.Error())
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
