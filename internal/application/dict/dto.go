package dict

import (
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
)

// EntryRequest creates or updates a currency or document type
type EntryRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=25"`
	Name      string `json:"name" binding:"required,min=1,max=50"`
	IsDefault bool   `json:"is_default"`
}

// EntryResponse is a currency or document type in API responses
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToEntryResponse converts a dictionary entry
func ToEntryResponse(e *dict.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Code:      e.Code,
		Name:      e.Name,
		IsDefault: e.IsDefault,
		UpdatedAt: e.UpdatedAt,
	}
}

// DimensionRequest creates or updates a dimension
type DimensionRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// DimensionResponse is a dimension in API responses
type DimensionResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	TopLevelID uuid.UUID  `json:"top_level_id"`
	TopLevel   string     `json:"top_level"`
}

// DimensionNode is a dimension with its subtree
type DimensionNode struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Children []DimensionNode `json:"children"`
}

func toDimensionResponse(d dict.Dimension, tree *dict.DimensionTree) DimensionResponse {
	resp := DimensionResponse{ID: d.ID, Name: d.Name, ParentID: d.ParentID, TopLevelID: d.ID, TopLevel: d.Name}
	if top, ok := tree.TopLevel(d.ID); ok {
		resp.TopLevelID = top.ID
		resp.TopLevel = top.Name
	}
	return resp
}

func buildNodes(tree *dict.DimensionTree, parent *uuid.UUID, depth int) []DimensionNode {
	children := tree.Children(parent)
	nodes := make([]DimensionNode, 0, len(children))
	for _, c := range children {
		node := DimensionNode{ID: c.ID, Name: c.Name, Children: []DimensionNode{}}
		if depth < maxTreeDepth {
			id := c.ID
			node.Children = buildNodes(tree, &id, depth+1)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

const maxTreeDepth = 32
