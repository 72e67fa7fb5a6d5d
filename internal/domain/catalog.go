package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind names a catalog collection that shares the name/description/avatar shape.
type Kind string

const (
	KindCategory       Kind = "category"
	KindStatus         Kind = "status"
	KindClassification Kind = "classification"
	KindCondition      Kind = "condition"
)

var Kinds = []Kind{KindCategory, KindStatus, KindClassification, KindCondition}

func (k Kind) Collection() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindStatus:
		return "statuses"
	case KindClassification:
		return "classifications"
	case KindCondition:
		return "conditions"
	}
	return string(k)
}

// Label is the capitalised name used in user-facing messages.
func (k Kind) Label() string {
	switch k {
	case KindCategory:
		return "Category"
	case KindStatus:
		return "Status"
	case KindClassification:
		return "Classification"
	case KindCondition:
		return "Condition"
	}
	return string(k)
}

type CatalogItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"    json:"id"`
	Name        string             `bson:"name"             json:"name"`
	Description string             `bson:"description"      json:"description,omitempty"`
	Avatar      *Asset             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"       json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"       json:"updated_at"`
}

const ProductsCollection = "products"

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	Name           string             `bson:"name"                     json:"name"`
	Description    string             `bson:"description"              json:"description,omitempty"`
	Quantity       int                `bson:"quantity"                 json:"quantity"`
	Price          float64            `bson:"price"                    json:"price"`
	Category       primitive.ObjectID `bson:"category"                 json:"category"`
	Status         primitive.ObjectID `bson:"status,omitempty"         json:"status,omitempty"`
	Classification primitive.ObjectID `bson:"classification,omitempty" json:"classification,omitempty"`
	Condition      primitive.ObjectID `bson:"condition,omitempty"      json:"condition,omitempty"`
	Images         []Asset            `bson:"images"                   json:"images"`
	CreatedAt      time.Time          `bson:"created_at"               json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"               json:"updated_at"`
}
