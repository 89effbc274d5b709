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

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// storefrontFilter is the baseline visibility condition for shopper-facing
// reads: live, public, not soft-deleted.
func storefrontFilter() bson.M {
	return bson.M{
		"status":     models.StatusActive,
		"visibility": models.VisibilityPublic,
		"deleted_at": bson.M{"$exists": false},
	}
}

// FindStorefrontSnapshot returns the complete shopper-visible catalog in the
// baseline fetch order (featured first, then name ascending). Filtering and
// sorting beyond that happen in the catalog engine, not in the database.
func (r *ProductRepository) FindStorefrontSnapshot(ctx context.Context) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "is_featured", Value: -1},
		{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, storefrontFilter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	return &product, err
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	filter := bson.M{"sku": sku, "deleted_at": bson.M{"$exists": false}}
	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	return &product, err
}

func (r *ProductRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*mongo.InsertOneResult, error) {
	return r.collection.InsertOne(ctx, product)
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []interface{}) (*mongo.InsertManyResult, error) {
	return r.collection.InsertMany(ctx, products)
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, updates bson.M) (*mongo.UpdateResult, error) {
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	updates["updated_at"] = time.Now().UTC()
	updateQuery := bson.M{"$set": updates}
	return r.collection.UpdateOne(ctx, filter, updateQuery)
}

// Delete performs a soft delete.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) (*mongo.UpdateResult, error) {
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"deleted_at": time.Now().UTC()}}
	return r.collection.UpdateOne(ctx, filter, update)
}

// EnsureIndexes creates the indexes the storefront snapshot query and SKU
// uniqueness depend on.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "visibility", Value: 1},
				{Key: "is_featured", Value: -1},
				{Key: "name", Value: 1},
			},
		},
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
