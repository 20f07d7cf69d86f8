package seeds

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"

	dto "quizbuilder_backend/internals/features/quizzes/dto"
	repository "quizbuilder_backend/internals/features/quizzes/repository"
)

// SeedQuizzesFromYAML creates the quizzes defined in filePath. Quizzes whose
// title already exists are skipped, so running it twice is harmless.
func SeedQuizzesFromYAML(ctx context.Context, repo repository.QuizRepository, filePath string) (int, error) {
	log.Infof("📥 Membaca file seed: %s", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Wrap(err, "read seed file")
	}
	reqs, err := dto.DecodeQuizzesYAML(raw)
	if err != nil {
		return 0, errors.Wrap(err, "decode seed file")
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "list existing quizzes")
	}
	titles := make(map[string]bool, len(existing))
	for _, q := range existing {
		titles[q.QuizTitle] = true
	}

	created := 0
	for _, req := range reqs {
		if titles[req.Title] {
			log.Infof("ℹ️ Quiz %q sudah ada, dilewati.", req.Title)
			continue
		}
		m, err := req.ToModel()
		if err != nil {
			return created, errors.Wrapf(err, "build quiz %q", req.Title)
		}
		if err := repo.Create(ctx, m); err != nil {
			return created, errors.Wrapf(err, "create quiz %q", req.Title)
		}
		titles[req.Title] = true
		created++
	}
	log.Infof("✅ Seed selesai: %d quiz dibuat", created)
	return created, nil
}
