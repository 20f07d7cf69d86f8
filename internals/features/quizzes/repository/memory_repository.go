package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	memdb "github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"

	model "quizbuilder_backend/internals/features/quizzes/model"
)

const quizTable = "quizzes"

type quizRecord struct {
	ID   string
	Quiz model.QuizModel
}

// MemoryRepository keeps quizzes in a go-memdb table. Used for
// DB_DRIVER=memory and in tests.
type MemoryRepository struct {
	db  *memdb.MemDB
	now func() time.Time
}

func NewMemoryRepository() (*MemoryRepository, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			quizTable: {
				Name: quizTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, errors.Wrap(err, "init memdb")
	}
	return &MemoryRepository{db: db, now: time.Now}, nil
}

func (r *MemoryRepository) Create(ctx context.Context, m *model.QuizModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	now := r.now().UTC()
	m.QuizCreatedAt, m.QuizUpdatedAt = now, now

	txn := r.db.Txn(true)
	defer txn.Abort()
	if existing, err := txn.First(quizTable, "id", m.QuizID.String()); err != nil {
		return errors.Wrap(err, "lookup quiz")
	} else if existing != nil {
		return errors.Errorf("quiz %s already exists", m.QuizID)
	}
	if err := txn.Insert(quizTable, &quizRecord{ID: m.QuizID.String(), Quiz: copyModel(*m)}); err != nil {
		return errors.Wrap(err, "insert quiz")
	}
	txn.Commit()
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]model.QuizModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(quizTable, "id")
	if err != nil {
		return nil, errors.Wrap(err, "list quizzes")
	}
	out := []model.QuizModel{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, copyModel(obj.(*quizRecord).Quiz))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.QuizModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(quizTable, "id", id.String())
	if err != nil {
		return nil, errors.Wrapf(err, "get quiz %s", id)
	}
	if obj == nil {
		return nil, ErrQuizNotFound
	}
	m := copyModel(obj.(*quizRecord).Quiz)
	return &m, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := r.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(quizTable, "id", id.String())
	if err != nil {
		return errors.Wrapf(err, "delete quiz %s", id)
	}
	if obj == nil {
		return ErrQuizNotFound
	}
	if err := txn.Delete(quizTable, obj); err != nil {
		return errors.Wrapf(err, "delete quiz %s", id)
	}
	txn.Commit()
	return nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// stored records are immutable; callers only ever see copies
func copyModel(m model.QuizModel) model.QuizModel {
	m.QuizQuestions = append([]byte(nil), m.QuizQuestions...)
	return m
}
