package handler

import (
	"net/http"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CadastrosHandler serves the profissionais and especialidades catalogs.
type CadastrosHandler struct{ svc service.CadastroService }

func NewCadastrosHandler(svc service.CadastroService) *CadastrosHandler {
	return &CadastrosHandler{svc: svc}
}

// ── Profissionais ─────────────────────────────────────────────────────────────

func (h *CadastrosHandler) ListarProfissionais(c *gin.Context) {
	resp, err := h.svc.ListarProfissionais(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

func (h *CadastrosHandler) CriarProfissional(c *gin.Context) {
	var req dto.CadastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarProfissional(c.Request.Context(), req.Nome)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusCreated, resp)
}

func (h *CadastrosHandler) AtualizarProfissional(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CadastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AtualizarProfissional(c.Request.Context(), id, req.Nome); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}

func (h *CadastrosHandler) ExcluirProfissional(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ExcluirProfissional(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}

// ── Especialidades ────────────────────────────────────────────────────────────

func (h *CadastrosHandler) ListarEspecialidades(c *gin.Context) {
	resp, err := h.svc.ListarEspecialidades(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

func (h *CadastrosHandler) CriarEspecialidade(c *gin.Context) {
	var req dto.CadastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarEspecialidade(c.Request.Context(), req.Nome)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusCreated, resp)
}

func (h *CadastrosHandler) AtualizarEspecialidade(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CadastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AtualizarEspecialidade(c.Request.Context(), id, req.Nome); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}

func (h *CadastrosHandler) ExcluirEspecialidade(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ExcluirEspecialidade(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}
