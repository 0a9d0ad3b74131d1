package funcionario

import (
	"net/http"

	"hr-service/internal/shared/apperror"
	"hr-service/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pathParam = "pessoaId"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("funcionario.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("funcionario.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("funcionario request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("funcionario request failed", fields...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req *FuncionarioRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("http funcionario binding failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create funcionario")

	var req FuncionarioRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.logger.Debug("http get all funcionarios")

	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewListMeta(len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param(pathParam)
	h.logger.Debug("http get funcionario by id", zap.String("pessoa_id", id))

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param(pathParam)
	h.logger.Debug("http update funcionario", zap.String("pessoa_id", id))

	var req FuncionarioRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param(pathParam)
	h.logger.Debug("http delete funcionario", zap.String("pessoa_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id := c.Param(pathParam)
	h.logger.Debug("http deactivate funcionario", zap.String("pessoa_id", id))

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
