package tutoring

import (
	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/database/questions"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/entities"
)

// TxQuestionWriter stores a generated batch in one transaction, re-checking
// that the subject still exists before inserting.
type TxQuestionWriter struct {
	db *gorm.DB
}

func NewTxQuestionWriter(db *gorm.DB) *TxQuestionWriter {
	return &TxQuestionWriter{db: db}
}

func (w *TxQuestionWriter) SaveGenerated(subjectID uint, batch []entities.Question) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		exists, err := subjects.NewRepository(tx).Exists(subjectID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSubjectGone
		}
		return questions.NewRepository(tx).CreateQuestions(batch)
	})
}
