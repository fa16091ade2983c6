package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Schema     SchemaRepo
	Submission SubmissionRepo
	User       UserRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Schema:     NewSchemaRepo(db),
		Submission: NewSubmissionRepo(db),
		User:       NewUserRepo(db),
		db:         db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Schema:     r.Schema.WithTx(tx),
		Submission: r.Submission.WithTx(tx),
		User:       r.User.WithTx(tx),
		db:         tx,
	}
}

// ExecTx runs fn against transaction-scoped repositories. Any error rolls
// the whole transaction back.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
