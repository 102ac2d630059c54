package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/database/dberrors"
	"github.com/bookend/bookend/internal/entities"
)

// BookStore is implemented by internal/database/books.Repository.
type BookStore interface {
	Create(book *entities.Book) (uint, error)
	GetByID(id uint) (*entities.Book, error)
	Update(book *entities.Book) error
	Delete(id uint) error
	List() ([]entities.Book, error)
}

type BooksController struct {
	store         BookStore
	enqueueEnrich func(bookID uint) // nil when background lookup is disabled
}

func NewBooksController(store BookStore, enqueueEnrich func(uint)) *BooksController {
	return &BooksController{
		store:         store,
		enqueueEnrich: enqueueEnrich,
	}
}

// ListBooks returns the whole library. A failed read logs the cause and
// returns an empty list; a listing can never corrupt state, so the
// dashboard stays usable while the problem is diagnosed.
func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.store.List()
	if err != nil {
		if errors.Is(err, dberrors.ErrStorage) {
			log.Printf("ListBooks: %v", err)
			c.JSON(http.StatusOK, gin.H{"books": []entities.Book{}, "count": 0})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	id, err := controller.store.Create(&book)
	if err != nil {
		respondError(c, err)
		return
	}

	if controller.enqueueEnrich != nil && (book.TotalPages == 0 || book.CoverImage == "") {
		controller.enqueueEnrich(id)
	}

	c.JSON(http.StatusCreated, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	book.ID = id

	if err := controller.store.Update(&book); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "book updated"})
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "book and its sessions deleted"})
}
