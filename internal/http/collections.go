package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/services"
)

type CollectionService interface {
	FetchCollections(userID uint) result.Result[[]entities.Collection]
	FetchCollection(id, userID uint) result.Result[*entities.Collection]
	CreateCollection(userID uint, input services.CollectionInput) result.Result[*entities.Collection]
	UpdateCollection(id, userID uint, input services.CollectionInput) result.Result[*entities.Collection]
	DeleteCollection(id, userID uint) result.Result[*entities.Collection]
}

type CollectionsController struct {
	collections CollectionService
}

func NewCollectionsController(collections CollectionService) *CollectionsController {
	return &CollectionsController{collections: collections}
}

// Get handles GET /api/data/collection
// With ?id= it returns one collection and its subjects, otherwise the caller's list.
func (cc *CollectionsController) Get(c *gin.Context) {
	if id, ok := queryID(c, "id"); ok {
		respond(c, cc.collections.FetchCollection(id, GetUserID(c)))
		return
	}
	respond(c, cc.collections.FetchCollections(GetUserID(c)))
}

// Create handles POST /api/data/collection
func (cc *CollectionsController) Create(c *gin.Context) {
	var input services.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	respond(c, cc.collections.CreateCollection(GetUserID(c), input))
}

// Update handles PUT /api/data/collection?id=
func (cc *CollectionsController) Update(c *gin.Context) {
	id, ok := requireQueryID(c, "id")
	if !ok {
		return
	}
	var input services.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	respond(c, cc.collections.UpdateCollection(id, GetUserID(c), input))
}

// Delete handles DELETE /api/data/collection?id=
func (cc *CollectionsController) Delete(c *gin.Context) {
	id, ok := requireQueryID(c, "id")
	if !ok {
		return
	}
	respond(c, cc.collections.DeleteCollection(id, GetUserID(c)))
}
