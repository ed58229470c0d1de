package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/pathviz/solver"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxRecent = 500

// runDocument is the stored shape of a solver.Run.
type runDocument struct {
	ID           string    `bson:"_id"`
	Algorithm    string    `bson:"algorithm"`
	Width        int       `bson:"width"`
	Height       int       `bson:"height"`
	PathLength   int       `bson:"pathLength"`
	VisitedCount int       `bson:"visitedCount"`
	Elapsed      float64   `bson:"elapsed"`
	Cached       bool      `bson:"cached"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// RunRepo handles the persistence of solve run diagnostics.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or replaces a run by its ID.
func (r *RunRepo) Save(run *solver.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	doc := toDocument(run)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"algorithm":    doc.Algorithm,
			"width":        doc.Width,
			"height":       doc.Height,
			"pathLength":   doc.PathLength,
			"visitedCount": doc.VisitedCount,
			"elapsed":      doc.Elapsed,
			"cached":       doc.Cached,
			"createdAt":    doc.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *RunRepo) Recent(limit int) ([]solver.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var docs []runDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	runs := make([]solver.Run, 0, len(docs))
	for _, doc := range docs {
		run, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func toDocument(run *solver.Run) runDocument {
	return runDocument{
		ID:           run.ID.String(),
		Algorithm:    run.Algorithm.String(),
		Width:        run.Width,
		Height:       run.Height,
		PathLength:   run.PathLength,
		VisitedCount: run.VisitedCount,
		Elapsed:      run.Elapsed,
		Cached:       run.Cached,
		CreatedAt:    run.CreatedAt,
	}
}

func fromDocument(doc runDocument) (solver.Run, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return solver.Run{}, errors.New("stored run has a bad id: " + doc.ID)
	}
	alg, err := solver.ParseAlgorithm(doc.Algorithm)
	if err != nil {
		return solver.Run{}, err
	}
	return solver.Run{
		ID:           id,
		Algorithm:    alg,
		Width:        doc.Width,
		Height:       doc.Height,
		PathLength:   doc.PathLength,
		VisitedCount: doc.VisitedCount,
		Elapsed:      doc.Elapsed,
		Cached:       doc.Cached,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
