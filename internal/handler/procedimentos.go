package handler

import (
	"net/http"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProcedimentosHandler struct{ svc service.ProcedimentoService }

func NewProcedimentosHandler(svc service.ProcedimentoService) *ProcedimentosHandler {
	return &ProcedimentosHandler{svc: svc}
}

func (h *ProcedimentosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

// Upsert godoc
// @Summary Insere ou atualiza (por nome) um procedimento e seus três preços
// @Tags procedimentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpsertProcedimentoRequest true "Procedimento"
// @Success 200 {object} dto.ProcedimentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/procedimentos [put]
func (h *ProcedimentosHandler) Upsert(c *gin.Context) {
	var req dto.UpsertProcedimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

func (h *ProcedimentosHandler) Excluir(c *gin.Context) {
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
