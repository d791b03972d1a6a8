package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/service"
)

type CortesHandler struct{ svc service.CorteService }

func NewCortesHandler(svc service.CorteService) *CortesHandler { return &CortesHandler{svc: svc} }

// CrearX godoc
// @Summary Toma un corte X (foto intermedia) del turno abierto
// @Tags cortes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 201 {object} dto.CorteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id}/cortes/x [post]
func (h *CortesHandler) CrearX(c *gin.Context) {
	turnoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.CrearCorteX(c.Request.Context(), tiendaID, cajeroID, turnoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearZ godoc
// @Summary Toma el corte Z (foto final) de un turno cerrado
// @Tags cortes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 201 {object} dto.CorteResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/turnos/{id}/cortes/z [post]
func (h *CortesHandler) CrearZ(c *gin.Context) {
	turnoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tiendaID, cajeroID, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.CrearCorteZ(c.Request.Context(), tiendaID, cajeroID, turnoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista los cortes de un turno en orden cronológico
// @Tags cortes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {array} dto.CorteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id}/cortes [get]
func (h *CortesHandler) Listar(c *gin.Context) {
	turnoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tiendaID, _, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarCortes(c.Request.Context(), tiendaID, turnoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarImpreso godoc
// @Summary Marca un corte como impreso (reimpresiones pisan la marca)
// @Tags cortes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Param corte_id path string true "ID del corte"
// @Success 200 {object} dto.CorteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id}/cortes/{corte_id}/imprimir [post]
func (h *CortesHandler) MarcarImpreso(c *gin.Context) {
	turnoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	corteID, ok := parseIDParam(c, "corte_id")
	if !ok {
		return
	}
	tiendaID, _, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.MarcarImpreso(c.Request.Context(), tiendaID, turnoID, corteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Resumen de supervisión del turno: cifras del cierre y cortes
// @Tags cortes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {object} dto.ResumenTurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id}/resumen [get]
func (h *CortesHandler) Resumen(c *gin.Context) {
	turnoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tiendaID, _, ok := cajaClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), tiendaID, turnoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
