package database

// SubmissionRepository is the persistence interface for the pipeline
// audit log.
type SubmissionRepository interface {
	Insert(sourceURL, style string) (string, error)
	Complete(id, entryID, imageURL string) error
	Fail(id string, failure error) error

	GetByID(id string) (*Submission, error)
	GetLatestBySourceURL(sourceURL string) (*Submission, error)
	HasSucceeded(sourceURL string) (bool, error)
	Count() (int, error)
	CountByStatus(status string) (int, error)
	GetRecent(limit int) ([]Submission, error)
}
