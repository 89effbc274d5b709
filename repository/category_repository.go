package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prepfox/catalog-service/models"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

// FindActive returns all active categories in their configured display order.
func (r *CategoryRepository) FindActive(ctx context.Context) ([]models.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	return &category, err
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	return &category, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*mongo.InsertOneResult, error) {
	return r.collection.InsertOne(ctx, category)
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, updates bson.M) (*mongo.UpdateResult, error) {
	updates["updated_at"] = time.Now().UTC()
	return r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) (*mongo.DeleteResult, error) {
	return r.collection.DeleteOne(ctx, bson.M{"_id": id})
}
