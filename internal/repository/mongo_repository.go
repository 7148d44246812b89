package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo documents keep ids as strings so records written by other services
// stay readable.
type moodDocument struct {
	ID         string    `bson:"_id"`
	SubjectID  string    `bson:"subjectId"`
	Mood       string    `bson:"mood"`
	Factors    []string  `bson:"factors"`
	Note       string    `bson:"note,omitempty"`
	RecordedAt time.Time `bson:"recordedAt"`
}

type riskDocument struct {
	ID            string    `bson:"_id"`
	SubjectID     string    `bson:"subjectId"`
	RiskLevel     string    `bson:"riskLevel"`
	WellnessIndex int       `bson:"wellnessIndex"`
	Suggestions   []string  `bson:"suggestions"`
	EvaluatedAt   time.Time `bson:"evaluatedAt"`
}

// MongoMoodRepository reads mood entries from the mood_entries collection.
type MongoMoodRepository struct {
	collection *mongo.Collection
}

func NewMongoMoodRepository(db *mongo.Database) *MongoMoodRepository {
	return &MongoMoodRepository{collection: db.Collection("mood_entries")}
}

func (r *MongoMoodRepository) ListMoodEntries(ctx context.Context, subjectID uuid.UUID, since, until time.Time) ([]models.MoodEntry, error) {
	filter := bson.M{
		"subjectId":  subjectID.String(),
		"recordedAt": bson.M{"$gte": since, "$lte": until},
	}
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []moodDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]models.MoodEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toModel())
	}
	return entries, nil
}

// MongoRiskRepository reads risk evaluations from the risk_evaluations collection.
type MongoRiskRepository struct {
	collection *mongo.Collection
}

func NewMongoRiskRepository(db *mongo.Database) *MongoRiskRepository {
	return &MongoRiskRepository{collection: db.Collection("risk_evaluations")}
}

func (r *MongoRiskRepository) ListRecentRiskEvaluations(ctx context.Context, subjectID uuid.UUID, limit int) ([]models.RiskEvaluation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "evaluatedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"subjectId": subjectID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []riskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	evals := make([]models.RiskEvaluation, 0, len(docs))
	for _, d := range docs {
		evals = append(evals, d.toModel())
	}
	return evals, nil
}

func (d moodDocument) toModel() models.MoodEntry {
	return models.MoodEntry{
		ID:         parseUUID(d.ID),
		SubjectID:  parseUUID(d.SubjectID),
		Mood:       d.Mood,
		Factors:    d.Factors,
		Note:       d.Note,
		RecordedAt: d.RecordedAt,
	}
}

func (d riskDocument) toModel() models.RiskEvaluation {
	return models.RiskEvaluation{
		ID:            parseUUID(d.ID),
		SubjectID:     parseUUID(d.SubjectID),
		RiskLevel:     d.RiskLevel,
		WellnessIndex: d.WellnessIndex,
		Suggestions:   d.Suggestions,
		EvaluatedAt:   d.EvaluatedAt,
	}
}

// parseUUID tolerates ObjectID-style ids written by other producers.
func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
