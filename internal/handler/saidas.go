package handler

import (
	"net/http"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaidasHandler struct{ svc service.SaidaService }

func NewSaidasHandler(svc service.SaidaService) *SaidasHandler {
	return &SaidasHandler{svc: svc}
}

// Adicionar godoc
// @Summary Lança uma saída de dinheiro no caixa
// @Tags saidas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SaidaRequest true "Saída"
// @Success 201 {object} dto.SaidaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/saidas [post]
func (h *SaidasHandler) Adicionar(c *gin.Context) {
	var req dto.SaidaRequest
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

func (h *SaidasHandler) ListarPorCaixa(c *gin.Context) {
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
