package api

import (
	"net/http"

	"github.com/krehermann/bytevm/programs"
	"github.com/krehermann/bytevm/version"
	"github.com/labstack/echo/v4"
)

type StatusResponse struct {
	Version  string `json:"version"`
	Programs int    `json:"programs"`
	Runs     int    `json:"runs"`
}

func (s *Server) handleStatus(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, StatusResponse{
		Version:  version.Version,
		Programs: len(programs.Names()),
		Runs:     s.runs.Len(),
	})
}
