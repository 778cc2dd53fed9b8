package handler

import (
	"net/http"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecebimentosHandler struct{ svc service.RecebimentoService }

func NewRecebimentosHandler(svc service.RecebimentoService) *RecebimentosHandler {
	return &RecebimentosHandler{svc: svc}
}

// Adicionar godoc
// @Summary Lança um recebimento no caixa, com seus procedimentos vinculados
// @Tags recebimentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecebimentoRequest true "Recebimento"
// @Success 201 {object} dto.RecebimentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/recebimentos [post]
func (h *RecebimentosHandler) Adicionar(c *gin.Context) {
	var req dto.RecebimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adicionar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusCreated, resp)
}

// Atualizar replaces every field of the recebimento and its whole
// procedimento-link set.
func (h *RecebimentosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RecebimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

func (h *RecebimentosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}

// ListarPorCaixa returns the recebimentos of one caixa, newest first,
// each with its exames and effective total.
func (h *RecebimentosHandler) ListarPorCaixa(c *gin.Context) {
	caixaID, err := uuid.Parse(c.Query("caixa_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("caixa_id obrigatório"))
		return
	}
	resp, err := h.svc.ListarPorCaixa(c.Request.Context(), caixaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}
