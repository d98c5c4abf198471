package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaiso/Simplify/internal/domain"
)

// MongoStore — прогресс в MongoDB, один документ на flow.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

type mongoProgressDoc struct {
	ID             string          `bson:"_id"`
	CompletedSteps []string        `bson:"completed_steps"`
	Documents      map[string]bool `bson:"documents,omitempty"`
	UpdatedAt      time.Time       `bson:"updated_at"`
}

// NewMongoStore создаёт MongoStore. Пустой dbName заменяется на "simplify".
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	if dbName == "" {
		dbName = "simplify"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection("progress"),
	}
}

func (s *MongoStore) Get(ctx context.Context, flowID string) (domain.Progress, error) {
	if flowID == "" {
		return domain.Progress{}, ErrEmptyFlowID
	}

	var doc mongoProgressDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": flowID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.EmptyProgress(flowID), nil
		}
		return domain.Progress{}, fmt.Errorf("mongo find: %w", err)
	}

	p := domain.Progress{FlowID: flowID, CompletedSteps: doc.CompletedSteps, Documents: doc.Documents}
	p.Normalize()
	return p, nil
}

func (s *MongoStore) Save(ctx context.Context, p domain.Progress) error {
	if p.FlowID == "" {
		return ErrEmptyFlowID
	}

	doc := mongoProgressDoc{
		ID:             p.FlowID,
		CompletedSteps: p.CompletedSteps,
		Documents:      p.Documents,
		UpdatedAt:      time.Now().UTC(),
	}
	if doc.CompletedSteps == nil {
		doc.CompletedSteps = []string{}
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.FlowID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, flowID string) error {
	if flowID == "" {
		return ErrEmptyFlowID
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": flowID}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
