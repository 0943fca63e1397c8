package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

type ProductHandler struct {
	Svc       *application.ProductService
	Logger    *logrus.Logger
	MaxUpload int64
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger, maxUpload int64) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger, MaxUpload: maxUpload}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", map[string]any{"count": len(products)})
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// Create POST /api/products, multipart with a required "image" file.
func (h *ProductHandler) Create(c *gin.Context) {
	var in application.ProductInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	img, err := readImage(c, "image", h.MaxUpload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), middleware.Token(c), in, img)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in application.ProductInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	img, err := readImage(c, "image", h.MaxUpload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), middleware.Token(c), c.Param("id"), in, img)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.DeleteProduct(c.Request.Context(), middleware.Token(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true, "id": id}, "product deleted", nil)
}
