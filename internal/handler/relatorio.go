package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RelatorioHandler struct {
	svc service.RelatorioService
	loc *time.Location
}

func NewRelatorioHandler(svc service.RelatorioService, loc *time.Location) *RelatorioHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RelatorioHandler{svc: svc, loc: loc}
}

// parseFiltro reads the report filter from the query string. Bad uuids
// and bad dates fail the request instead of being dropped silently.
func (h *RelatorioHandler) parseFiltro(c *gin.Context) (dto.RelatorioFilter, bool) {
	var f dto.RelatorioFilter

	ini, fim, err := service.ParsePeriodo(c.Query("inicio"), c.Query("fim"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return f, false
	}
	f.Inicio, f.Fim = ini, fim

	for param, dst := range map[string]**uuid.UUID{
		"usuario_id":       &f.UsuarioID,
		"profissional_id":  &f.ProfissionalID,
		"especialidade_id": &f.EspecialidadeID,
	} {
		if v := c.Query(param); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New(param+" inválido"))
				return f, false
			}
			*dst = &id
		}
	}

	f.FormaPagamento = c.Query("forma_pagamento")
	f.Tabela = c.Query("tabela")
	f.Baixa = c.Query("baixa")
	f.Indicador = c.Query("indicador")
	f.Texto = c.Query("q")
	return f, true
}

// Recebimentos godoc
// @Summary Relatório paginado de recebimentos (50 por página)
// @Tags relatorio
// @Produce json
// @Security BearerAuth
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Param page query int false "Página"
// @Success 200 {object} dto.RelatorioPageResponse
// @Router /v1/relatorio/recebimentos [get]
func (h *RelatorioHandler) Recebimentos(c *gin.Context) {
	f, ok := h.parseFiltro(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	resp, err := h.svc.Recebimentos(c.Request.Context(), f, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

func (h *RelatorioHandler) Totais(c *gin.Context) {
	f, ok := h.parseFiltro(c)
	if !ok {
		return
	}
	resp, err := h.svc.Totais(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

// ExportCSV streams the whole filtered report as CSV, same filter
// surface as the paginated endpoint.
func (h *RelatorioHandler) ExportCSV(c *gin.Context) {
	f, ok := h.parseFiltro(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="recebimentos.csv"`)
	c.Status(http.StatusOK)
	if err := h.svc.ExportCSV(c.Request.Context(), f, c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// KPIs godoc
// @Summary Indicadores do dashboard (hoje, dinheiro, saídas, mês)
// @Tags relatorio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.KPIResponse
// @Router /v1/dashboard/kpis [get]
func (h *RelatorioHandler) KPIs(c *gin.Context) {
	resp, err := h.svc.KPIs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

// Fechamento returns the closing summary of the caller's caixa of today,
// or data=null when no caixa was opened.
func (h *RelatorioHandler) Fechamento(c *gin.Context) {
	usuarioID, ok := usuarioDoToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.FechamentoDoDia(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}
