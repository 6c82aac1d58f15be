package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDocument is the MongoDB schema for one questionnaire response.
type SubmissionDocument struct {
	ID                           primitive.ObjectID `bson:"_id"`
	Name                         string             `bson:"name"`
	Email                        string             `bson:"email"`
	Location                     string             `bson:"location"`
	Age                          int                `bson:"age"`
	Education                    string             `bson:"education"`
	WorkStatus                   string             `bson:"workStatus"`
	InterestInCognitiveEconomics string             `bson:"interestInCognitiveEconomics"`
	SelectedChapters             []string           `bson:"selectedChapters"`
	SelectedBooks                []string           `bson:"selectedBooks"`
	ParticipationPreferences     []string           `bson:"participationPreferences"`
	Proposal                     ProposalDocument   `bson:"proposal"`
	CreatedAt                    time.Time          `bson:"createdAt"`
}

// ProposalDocument is the embedded proposal subdocument. All three fields
// are independently optional; absent fields stay out of the stored
// document entirely.
type ProposalDocument struct {
	Title         *string          `bson:"title,omitempty"`
	Summary       *string          `bson:"summary,omitempty"`
	Documentation *FileRefDocument `bson:"documentation,omitempty"`
}

// FileRefDocument keeps the metadata of the staged proposal upload.
type FileRefDocument struct {
	StoredName   string `bson:"storedName"`
	OriginalName string `bson:"originalName"`
	Size         int64  `bson:"size,omitempty"`
	ContentType  string `bson:"contentType,omitempty"`
}
