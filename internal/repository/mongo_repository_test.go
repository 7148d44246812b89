package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMoodDocumentRoundTrip(t *testing.T) {
	id := uuid.New()
	subject := uuid.New()
	at := time.Date(2024, 6, 2, 15, 0, 0, 0, time.UTC)

	raw, err := bson.Marshal(bson.M{
		"_id":        id.String(),
		"subjectId":  subject.String(),
		"mood":       "Happy",
		"factors":    bson.A{"sleep", "friends"},
		"recordedAt": at,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc moodDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entry := doc.toModel()
	if entry.ID != id || entry.SubjectID != subject {
		t.Errorf("ids not mapped: %+v", entry)
	}
	if entry.Mood != "Happy" || len(entry.Factors) != 2 || entry.Factors[1] != "friends" {
		t.Errorf("fields not mapped: %+v", entry)
	}
	if !entry.RecordedAt.Equal(at) {
		t.Errorf("recorded at = %v, want %v", entry.RecordedAt, at)
	}
}

func TestRiskDocumentMapping(t *testing.T) {
	doc := riskDocument{
		ID:            "65f1c0ffee0000000000abcd",
		SubjectID:     uuid.NewString(),
		RiskLevel:     "High",
		WellnessIndex: 41,
		Suggestions:   []string{"talk to a counselor"},
		EvaluatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	eval := doc.toModel()
	if eval.ID != uuid.Nil {
		t.Errorf("non-uuid id should map to uuid.Nil, got %s", eval.ID)
	}
	if eval.RiskLevel != "High" || eval.WellnessIndex != 41 || len(eval.Suggestions) != 1 {
		t.Errorf("fields not mapped: %+v", eval)
	}
}
