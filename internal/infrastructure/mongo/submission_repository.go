package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// SubmissionRepository stores questionnaire responses in MongoDB.
type SubmissionRepository struct {
	responses *mongo.Collection
}

// NewSubmissionRepository binds the repository to the response collection.
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	return &SubmissionRepository{responses: db.Collection(collection)}
}

// Insert adds one submission and writes the assigned id back onto the
// domain model.
func (r *SubmissionRepository) Insert(ctx context.Context, sub *domain.Submission) error {
	doc := toDocument(sub)
	doc.ID = primitive.NewObjectID()

	if _, err := r.responses.InsertOne(ctx, doc); err != nil {
		return err
	}

	sub.ID = doc.ID.Hex()
	return nil
}

// ListAll returns every stored submission in store-native order.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	cursor, err := r.responses.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, fromDocument(doc))
	}
	return submissions, cursor.Err()
}

// DeleteAll clears the collection and reports how many records were removed.
func (r *SubmissionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.responses.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func toDocument(sub *domain.Submission) SubmissionDocument {
	doc := SubmissionDocument{
		Name:                         sub.Name,
		Email:                        sub.Email,
		Location:                     sub.Location,
		Age:                          sub.Age,
		Education:                    sub.Education,
		WorkStatus:                   sub.WorkStatus,
		InterestInCognitiveEconomics: sub.InterestInCognitiveEconomics,
		SelectedChapters:             append([]string{}, sub.SelectedChapters...),
		SelectedBooks:                append([]string{}, sub.SelectedBooks...),
		ParticipationPreferences:     append([]string{}, sub.ParticipationPreferences...),
		Proposal: ProposalDocument{
			Title:   sub.Proposal.Title,
			Summary: sub.Proposal.Summary,
		},
		CreatedAt: sub.CreatedAt,
	}
	if ref := sub.Proposal.Document; ref != nil {
		doc.Proposal.Documentation = &FileRefDocument{
			StoredName:   ref.StoredName,
			OriginalName: ref.OriginalName,
			Size:         ref.Size,
			ContentType:  ref.ContentType,
		}
	}
	return doc
}

func fromDocument(doc SubmissionDocument) domain.Submission {
	sub := domain.Submission{
		ID:                           doc.ID.Hex(),
		Name:                         doc.Name,
		Email:                        doc.Email,
		Location:                     doc.Location,
		Age:                          doc.Age,
		Education:                    doc.Education,
		WorkStatus:                   doc.WorkStatus,
		InterestInCognitiveEconomics: doc.InterestInCognitiveEconomics,
		SelectedChapters:             emptyWhenNil(doc.SelectedChapters),
		SelectedBooks:                emptyWhenNil(doc.SelectedBooks),
		ParticipationPreferences:     emptyWhenNil(doc.ParticipationPreferences),
		Proposal: domain.Proposal{
			Title:   doc.Proposal.Title,
			Summary: doc.Proposal.Summary,
		},
		CreatedAt: doc.CreatedAt,
	}
	if ref := doc.Proposal.Documentation; ref != nil {
		sub.Proposal.Document = &domain.FileRef{
			StoredName:   ref.StoredName,
			OriginalName: ref.OriginalName,
			Size:         ref.Size,
			ContentType:  ref.ContentType,
		}
	}
	return sub
}

// emptyWhenNil keeps list fields well-formed sequences even when an older
// document stored them as null.
func emptyWhenNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
