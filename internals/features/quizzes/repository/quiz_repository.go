// file: internals/features/quizzes/repository/quiz_repository.go
package repository

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepository is the persistence gateway for quizzes. Payloads are
// expected to be validated by the caller.
type QuizRepository interface {
	Create(ctx context.Context, m *model.QuizModel) error
	// List returns every quiz, newest first.
	List(ctx context.Context) ([]model.QuizModel, error)
	Get(ctx context.Context, id uuid.UUID) (*model.QuizModel, error)
	// Delete removes a quiz; deleting an absent id returns ErrQuizNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// sortNewestFirst orders by creation time desc, then id desc so equal
// timestamps still list deterministically.
func sortNewestFirst(ms []model.QuizModel) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if !a.QuizCreatedAt.Equal(b.QuizCreatedAt) {
			return a.QuizCreatedAt.After(b.QuizCreatedAt)
		}
		return a.QuizID.String() > b.QuizID.String()
	})
}

// Classify maps a store error onto an error kind. ErrQuizNotFound becomes
// not-found; connectivity and timeout failures become store-unavailable;
// everything else is internal.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *helper.AppError
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, ErrQuizNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NewNotFound("Quiz not found")
	}
	if isUnavailable(err) {
		return helper.NewStoreUnavailable(err)
	}
	return helper.NewInternal(err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx connection exception, 57P0x operator intervention (shutdown)
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
