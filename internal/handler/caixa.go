package handler

import (
	"net/http"

	"clinicaixa/internal/apierror"
	"clinicaixa/internal/dto"
	"clinicaixa/internal/middleware"
	"clinicaixa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre o caixa do usuário para uma data
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.CaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDoToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusCreated, resp)
}

// Encerrar godoc
// @Summary Encerra o caixa do usuário na data informada
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EncerrarCaixaRequest true "Data do caixa"
// @Success 200 {object} dto.CaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/encerrar [post]
func (h *CaixaHandler) Encerrar(c *gin.Context) {
	var req dto.EncerrarCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDoToken(c)
	if !ok {
		return
	}
	if err := h.svc.Encerrar(c.Request.Context(), usuarioID, req.DataCaixa); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, nil)
}

// GetByDia returns the caixa for the authenticated user on the given day
// (query param "data_caixa", default today), or null when none exists.
func (h *CaixaHandler) GetByDia(c *gin.Context) {
	usuarioID, ok := usuarioDoToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByDia(c.Request.Context(), usuarioID, c.Query("data_caixa"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

// Listar returns caixas in a date range (query params "ini"/"fim"),
// joined with each owner's name.
func (h *CaixaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("ini"), c.Query("fim"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	okJSON(c, http.StatusOK, resp)
}

// usuarioDoToken extracts the authenticated user's id; writes the 401
// response itself when the claims are unusable.
func usuarioDoToken(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Não autenticado"))
		return uuid.Nil, false
	}
	return uid, true
}
