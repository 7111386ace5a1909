package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
)

var errMissingImageKey = errors.New("image key is required")

type ImageStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type ImageHandler struct {
	store ImageStore
}

func NewImageHandler(store ImageStore) *ImageHandler {
	return &ImageHandler{
		store: store,
	}
}

// HandleGetImage godoc
// @Summary      Stream a stored image by key
// @Tags         images
// @Produce      octet-stream
// @Param        key      path       string true "object key"
// @Success      200
// @Failure      404      {object}   response.Err
// @Router       /s3/getImage/{key} [get]
func (h *ImageHandler) HandleGetImage(ctx *gin.Context) {
	key := ctx.Param("key")
	if key == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingImageKey))

		return
	}

	body, contentType, err := h.store.Get(ctx.Request.Context(), key)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetImage -> h.store.Get -> %w", err)
		response.RenderErr(ctx, response.ErrNotFound(err))

		return
	}
	defer body.Close()

	ctx.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
