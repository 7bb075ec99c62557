package api

import (
	"errors"
	"net/http"

	resdto "libreserve/internal/handler/dto/response"
	"libreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookQueries queries.BookQueries
}

func NewBookHandler(bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookQueries: bookQueries,
	}
}

// @Summary List books
// @Description List the catalog ordered by title
// @Tags books
// @Produce json
// @Success 200 {array} resdto.BookListResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	items, err := h.bookQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookListResponse, len(items))
	for i, rm := range items {
		response[i] = resdto.FromBookListItem(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get book
// @Description Get book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	bookView, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(bookView))
}
