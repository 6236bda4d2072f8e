package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/krehermann/bytevm/programs"
	"github.com/krehermann/bytevm/store"
	"github.com/krehermann/bytevm/vm"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ServerConfig struct {
	ListenerAddr string
	Logger       *zap.Logger
	// defaults to an in-memory store
	Runs store.Storager[uint64, *Run]
}

type Server struct {
	ServerConfig

	echo   *echo.Echo
	runs   store.Storager[uint64, *Run]
	nextID atomic.Uint64
	logger *zap.Logger
}

// Run is the record of one execution of a catalog program
type Run struct {
	ID        uint64     `json:"id"`
	Program   string     `json:"program"`
	Value     vm.Value   `json:"value"`
	Returned  bool       `json:"returned"`
	Steps     int        `json:"steps"`
	Error     string     `json:"error,omitempty"`
	ErrorKind string     `json:"error_kind,omitempty"`
	Stack     []vm.Value `json:"stack"`
	// top of the stack when the run ended without returning
	Top       *vm.Value           `json:"top,omitempty"`
	Variables map[string]vm.Value `json:"variables"`
}

type programView struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
}

func NewServer(config ServerConfig) (*Server, error) {
	if config.Logger == nil {
		config.Logger, _ = zap.NewDevelopment()
	}
	if config.Runs == nil {
		config.Runs = store.NewMemStore[uint64, *Run]()
	}
	s := &Server{
		ServerConfig: config,
		runs:         config.Runs,
		logger:       config.Logger.Named("api"),
	}

	e := echo.New()
	e.HideBanner = true
	e.GET("/status", s.handleStatus)
	e.GET("/programs", s.handleListPrograms)
	e.GET("/programs/:name", s.handleGetProgram)
	e.POST("/programs/:name/run", s.handleRunProgram)
	e.GET("/runs/:id", s.handleGetRun)
	s.echo = e

	return s, nil
}

// Handler exposes the routes, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	s.logger.Info("api server starting",
		zap.String("addr", s.ListenerAddr))

	err := s.echo.Start(s.ListenerAddr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.runs.Close()
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleListPrograms(ectx echo.Context) error {
	entries := programs.All()
	out := make([]programView, len(entries))
	for i, e := range entries {
		out[i] = newProgramView(e)
	}
	return ectx.JSON(http.StatusOK, out)
}

func (s *Server) handleGetProgram(ectx echo.Context) error {
	e, err := programs.Get(ectx.Param("name"))
	if err != nil {
		return ectx.JSON(http.StatusNotFound,
			map[string]any{
				"error": err.Error(),
			})
	}
	return ectx.JSON(http.StatusOK, newProgramView(e))
}

func (s *Server) handleRunProgram(ectx echo.Context) error {
	e, err := programs.Get(ectx.Param("name"))
	if err != nil {
		return ectx.JSON(http.StatusNotFound,
			map[string]any{
				"error": err.Error(),
			})
	}

	run := s.execute(e)
	if err := s.runs.Put(run.ID, run); err != nil {
		return ectx.JSON(http.StatusServiceUnavailable,
			map[string]any{
				"error": err.Error(),
			})
	}

	status := http.StatusOK
	if run.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	return ectx.JSON(status, run)
}

func (s *Server) handleGetRun(ectx echo.Context) error {
	id, err := strconv.ParseUint(ectx.Param("id"), 10, 64)
	if err != nil {
		return ectx.JSON(http.StatusBadRequest,
			map[string]any{
				"error": err.Error(),
			})
	}

	run, err := s.runs.Get(id)
	if err != nil {
		return ectx.JSON(http.StatusNotFound,
			map[string]any{
				"error": err.Error(),
			})
	}
	return ectx.JSON(http.StatusOK, run)
}

// execute runs e on a fresh interpreter and records the final state
func (s *Server) execute(e programs.Entry) *Run {
	in := vm.NewInterpreter(vm.LoggerOpt(s.logger))
	res, err := in.Execute(e.Program)

	run := &Run{
		ID:        s.nextID.Add(1),
		Program:   e.Name,
		Value:     res.Value,
		Returned:  res.Returned,
		Steps:     res.Steps,
		Stack:     in.Stack().Values(),
		Variables: in.Variables().Snapshot(),
	}
	if !res.Returned {
		if top, perr := in.Stack().Peek(); perr == nil {
			run.Top = &top
		}
	}
	if err != nil {
		run.Error = err.Error()
		run.ErrorKind = ErrorKind(err)
	}

	s.logger.Info("program run",
		zap.Uint64("id", run.ID),
		zap.String("program", run.Program),
		zap.Bool("returned", run.Returned),
		zap.Int("steps", run.Steps),
		zap.String("error", run.Error),
	)
	return run
}

// ErrorKind names the execution error class for clients
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, vm.ErrStackUnderflow):
		return "stack_underflow"
	case errors.Is(err, vm.ErrUndefinedVariable):
		return "undefined_variable"
	case errors.Is(err, vm.ErrInvalidJumpTarget):
		return "invalid_jump_target"
	default:
		return "unknown"
	}
}

func newProgramView(e programs.Entry) programView {
	return programView{
		Name:         e.Name,
		Description:  e.Description,
		Instructions: e.Program.Strings(),
	}
}
