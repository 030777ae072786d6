package categories

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the category routes and seeds the defaults
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	if err := repo.SeedDefaults(context.Background()); err != nil {
		log.Printf("Failed to seed categories: %v", err)
	}

	categoryRoutes := router.Group("/categories")
	{
		categoryRoutes.GET("", handler.ListCategories)
		categoryRoutes.GET("/:slug", handler.GetCategory)
	}

	return repo
}
