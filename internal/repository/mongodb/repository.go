package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

const (
	stockCollection = "stock_solutions"
	solidCollection = "solid_reagents"
)

// Repository defines the reagent reference data reads backed by MongoDB.
type Repository interface {
	StockSolutions(ctx context.Context) ([]models.StockSolution, error)
	SolidReagents(ctx context.Context) ([]models.SolidReagent, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// StockSolutions reads every stock solution document.
func (r *MongoDBRepository) StockSolutions(ctx context.Context) ([]models.StockSolution, error) {
	var out []models.StockSolution
	if err := r.findAll(ctx, stockCollection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SolidReagents reads every solid reagent document.
func (r *MongoDBRepository) SolidReagents(ctx context.Context) ([]models.SolidReagent, error) {
	var out []models.SolidReagent
	if err := r.findAll(ctx, solidCollection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoDBRepository) findAll(ctx context.Context, collName string, out interface{}) error {
	collection := r.client.Database(r.dbName).Collection(collName)

	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collName, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collName, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
