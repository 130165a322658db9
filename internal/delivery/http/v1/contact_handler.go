package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(protected *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}

	contacts := protected.Group("/contacts")
	{
		contacts.GET("", handler.List)
		contacts.GET("/:id", handler.GetDetails)
		contacts.GET("/:id/applications", handler.ListApplications)
		contacts.POST("", handler.Create)
		contacts.PUT("/:id", handler.Update)
		contacts.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List contacts
// @Description  Ordered by first name
// @Tags         contacts
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Contact}
// @Router       /contacts [get]
// @Security     BearerAuth
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactUC.ListContacts(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contacts retrieved", contacts)
}

// GetDetails godoc
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response{data=domain.Contact}
// @Failure      404  {object}  response.Response
// @Router       /contacts/{id} [get]
// @Security     BearerAuth
func (h *ContactHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contact, err := h.contactUC.GetContact(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact retrieved", contact)
}

// ListApplications godoc
// @Summary      List applications linked to a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /contacts/{id}/applications [get]
// @Security     BearerAuth
func (h *ContactHandler) ListApplications(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	apps, err := h.contactUC.ListContactApplications(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// Create godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInput  true  "Contact JSON"
// @Success      201  {object}  response.Response{data=domain.Contact}
// @Failure      400  {object}  response.Response
// @Router       /contacts [post]
// @Security     BearerAuth
func (h *ContactHandler) Create(c *gin.Context) {
	var input domain.ContactInput
	if !bindJSON(c, &input) {
		return
	}
	contact, err := h.contactUC.CreateContact(c.Request.Context(), callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Contact created", contact)
}

// Update godoc
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Contact ID"
// @Param        contact  body      domain.ContactInput  true  "Contact JSON"
// @Success      200  {object}  response.Response{data=domain.Contact}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contacts/{id} [put]
// @Security     BearerAuth
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input domain.ContactInput
	if !bindJSON(c, &input) {
		return
	}
	contact, err := h.contactUC.UpdateContact(c.Request.Context(), id, callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact updated", contact)
}

// Delete godoc
// @Summary      Delete a contact
// @Description  Linked applications are kept with contact_id cleared
// @Tags         contacts
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contacts/{id} [delete]
// @Security     BearerAuth
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contactUC.DeleteContact(c.Request.Context(), id, callerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact deleted", nil)
}
