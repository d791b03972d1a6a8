package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/apierror"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/dto"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/middleware"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/service"
)

type TurnosHandler struct{ svc service.TurnoService }

func NewTurnosHandler(svc service.TurnoService) *TurnosHandler { return &TurnosHandler{svc: svc} }

// cajaClaims resuelve (tienda, cajero) desde el JWT. Toda operación de turno
// se hace sobre la caja del usuario autenticado, nunca sobre una ajena.
func cajaClaims(c *gin.Context) (tiendaID, cajeroID uuid.UUID, ok bool) {
	claims := middleware.GetClaims(c)
	tiendaID, err := uuid.Parse(claims.TiendaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("tienda del token invalida"))
		return uuid.Nil, uuid.Nil, false
	}
	cajeroID, err = uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("usuario del token invalido"))
		return uuid.Nil, uuid.Nil, false
	}
	return tiendaID, cajeroID, true
}

// Abrir godoc
// @Summary Abre un turno de caja
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirTurnoRequest true "Montos de apertura"
// @Success 201 {object} dto.TurnoResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/turnos/abrir [post]
func (h *TurnosHandler) Abrir(c *gin.Context) {
	var req dto.AbrirTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), tiendaID, cajeroID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actual godoc
// @Summary Devuelve el turno abierto del cajero autenticado
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/actual [get]
func (h *TurnosHandler) Actual(c *gin.Context) {
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Actual(c.Request.Context(), tiendaID, cajeroID)
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("sin turno abierto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra un turno con el conteo declarado y corre el arqueo
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Param body body dto.CerrarTurnoRequest true "Conteo fisico declarado"
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/turnos/{id}/cerrar [post]
func (h *TurnosHandler) Cerrar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), tiendaID, cajeroID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista los turnos del cajero, más recientes primero
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Máximo de filas (default 50)"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} dto.TurnoListResponse
// @Router /v1/turnos [get]
func (h *TurnosHandler) Listar(c *gin.Context) {
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.svc.Listar(c.Request.Context(), tiendaID, cajeroID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
